package domain

import "testing"

func TestDefaultBoardIsWellFormed(t *testing.T) {
	board := DefaultBoard()
	seen := make(map[int]bool)
	for _, sp := range board {
		if sp.Position < 0 || sp.Position >= BoardSize {
			t.Fatalf("%s at position %d is off the board", sp.Name, sp.Position)
		}
		if seen[sp.Position] {
			t.Fatalf("duplicate space at position %d", sp.Position)
		}
		seen[sp.Position] = true
		if sp.Price <= 0 {
			t.Fatalf("%s has price %d", sp.Name, sp.Price)
		}
		if sp.Rent < 0 {
			t.Fatalf("%s has negative rent", sp.Name)
		}
		if !sp.Owner.IsBanker() {
			t.Fatalf("%s starts owned by %q", sp.Name, sp.Owner.PlayerID)
		}
	}
}

func TestDefaultBoardKeepsTheCheapStarters(t *testing.T) {
	s := NewSession(DefaultBoard())

	med := s.PropertyAt(1)
	if med == nil || med.Name != "Mediterranean Avenue" || med.Price != 60 || med.Rent != 2 {
		t.Fatalf("space 1 = %+v", med)
	}
	baltic := s.PropertyAt(3)
	if baltic == nil || baltic.Name != "Baltic Avenue" || baltic.Price != 60 || baltic.Rent != 4 {
		t.Fatalf("space 3 = %+v", baltic)
	}
	if s.PropertyAt(0) != nil {
		t.Fatal("GO holds a property")
	}
}
