package domain

// Advance moves a board position forward by total spaces, wrapping at
// BoardSize.
func Advance(position, total int) int {
	return (position + total) % BoardSize
}

// NextTurn returns the turn index following cur for a turn order of n players.
func NextTurn(cur, n int) int {
	return (cur + 1) % n
}

// LabelPayload carries the values advertised in the match label.
type LabelPayload struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from session state.
func ComputeLabel(s *Session) LabelPayload {
	open := s.Phase == PhaseLobby && len(s.Players) < MaxPlayers
	return LabelPayload{Open: open, Game: "monopoly", Phase: string(s.Phase)}
}
