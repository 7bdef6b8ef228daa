package app

import (
	"sort"

	"monopoly/internal/domain"
)

// resolveTurnOrder draws one die per player and orders them by roll,
// highest first. The sort is stable so tied players keep their join order;
// the draw happens exactly once, when the lobby locks.
func resolveTurnOrder(dice Dice, state *domain.Session) []TurnOrderEntry {
	entries := make([]TurnOrderEntry, 0, len(state.JoinOrder))
	for _, userID := range state.JoinOrder {
		entries = append(entries, TurnOrderEntry{
			UserID:   userID,
			Username: state.Players[userID].Username,
			Roll:     dice.Roll(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Roll > entries[j].Roll
	})

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.UserID
	}
	state.TurnOrder = order
	state.CurrentTurn = 0

	return entries
}
