package nakama

import (
	"monopoly/internal/app"
	"monopoly/internal/domain"
)

// eventOpCode maps an engine event kind to its wire opcode.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventDiceRolled:
		return OpDiceRolled, true
	case app.EventPurchaseOffer:
		return OpPurchaseOffer, true
	case app.EventPropertyBought:
		return OpPropertyBought, true
	case app.EventRentPaid:
		return OpRentPaid, true
	case app.EventOfferSkipped:
		return OpOfferSkipped, true
	case app.EventTurnAwaited:
		return OpTurnAwaited, true
	default:
		return 0, false
	}
}

// wirePlayer is the lobby-state representation of one player.
type wirePlayer struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Money    int    `json:"money"`
	Position int    `json:"position"`
}

// wireLobbyState is broadcast after presence changes and resets.
type wireLobbyState struct {
	Phase       string       `json:"phase"`
	Players     []wirePlayer `json:"players"`
	OwnerUserID string       `json:"owner_user_id"`
}

func toWirePlayers(players []domain.Player) []wirePlayer {
	out := make([]wirePlayer, 0, len(players))
	for _, p := range players {
		out = append(out, wirePlayer{
			UserID:   p.UserID,
			Username: p.Username,
			Money:    p.Money,
			Position: p.Position,
		})
	}
	return out
}
