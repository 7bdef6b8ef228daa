package domain

import "testing"

func TestAdvanceWrapsAtBoardSize(t *testing.T) {
	cases := []struct {
		pos, total, want int
	}{
		{0, 7, 7},
		{38, 7, 5},
		{39, 1, 0},
		{33, 9, 2},
		{0, 12, 12},
	}
	for _, c := range cases {
		if got := Advance(c.pos, c.total); got != c.want {
			t.Fatalf("Advance(%d, %d) = %d, want %d", c.pos, c.total, got, c.want)
		}
	}
}

func TestNextTurnCycles(t *testing.T) {
	if got := NextTurn(0, 4); got != 1 {
		t.Fatalf("NextTurn(0, 4) = %d", got)
	}
	if got := NextTurn(3, 4); got != 0 {
		t.Fatalf("NextTurn(3, 4) = %d, want 0", got)
	}
	if got := NextTurn(1, 2); got != 0 {
		t.Fatalf("NextTurn(1, 2) = %d, want 0", got)
	}
}

func TestComputeLabel(t *testing.T) {
	s := NewSession(nil)
	label := ComputeLabel(s)
	if !label.Open || label.Game != "monopoly" || label.Phase != string(PhaseLobby) {
		t.Fatalf("lobby label = %+v", label)
	}

	for i := 0; i < MaxPlayers; i++ {
		id := string(rune('a' + i))
		s.Players[id] = &Player{UserID: id}
	}
	if ComputeLabel(s).Open {
		t.Fatal("label open with a full roster")
	}

	s.Phase = PhaseActive
	label = ComputeLabel(s)
	if label.Open || label.Phase != string(PhaseActive) {
		t.Fatalf("active label = %+v", label)
	}
}

func TestOwnerZeroValueIsBanker(t *testing.T) {
	var o Owner
	if !o.IsBanker() {
		t.Fatal("zero Owner is not the banker")
	}
	if OwnedBy("p1").IsBanker() {
		t.Fatal("owned property reported as bank-held")
	}
	if o != Banker {
		t.Fatal("zero Owner differs from Banker")
	}
}

func TestNewSessionCopiesSeed(t *testing.T) {
	seed := DefaultBoard()
	a := NewSession(seed)
	b := NewSession(seed)

	a.PropertyAt(3).Owner = OwnedBy("p1")
	if !b.PropertyAt(3).Owner.IsBanker() {
		t.Fatal("sessions share property state")
	}
	for _, sp := range seed {
		if !sp.Owner.IsBanker() {
			t.Fatalf("seed space %d mutated", sp.Position)
		}
	}
}
