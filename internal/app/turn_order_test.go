package app

import (
	"testing"

	"monopoly/internal/domain"
)

func sessionWithPlayers(ids ...string) *domain.Session {
	s := domain.NewSession(nil)
	for _, id := range ids {
		s.Players[id] = &domain.Player{UserID: id, Username: id, Money: domain.StartingMoney}
		s.JoinOrder = append(s.JoinOrder, id)
	}
	return s
}

func TestResolveTurnOrderSortsByRollDescending(t *testing.T) {
	state := sessionWithPlayers("a", "b", "c", "d")
	dice := &scriptDice{rolls: []int{2, 6, 4, 1}}

	entries := resolveTurnOrder(dice, state)

	want := []string{"b", "c", "a", "d"}
	for i, e := range entries {
		if e.UserID != want[i] {
			t.Fatalf("entries = %v, want order %v", entries, want)
		}
	}
	for i, id := range state.TurnOrder {
		if id != want[i] {
			t.Fatalf("state.TurnOrder = %v, want %v", state.TurnOrder, want)
		}
	}
	if state.CurrentTurn != 0 {
		t.Fatalf("current turn = %d, want 0", state.CurrentTurn)
	}
}

func TestResolveTurnOrderTiesFallBackToJoinOrder(t *testing.T) {
	state := sessionWithPlayers("a", "b", "c")
	dice := &scriptDice{rolls: []int{4, 4, 4}}

	resolveTurnOrder(dice, state)

	want := []string{"a", "b", "c"}
	for i, id := range state.TurnOrder {
		if id != want[i] {
			t.Fatalf("turn order = %v, want join order %v", state.TurnOrder, want)
		}
	}
}
