package app

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventGameStarted    EventKind = "game_started"
	EventDiceRolled     EventKind = "dice_rolled"
	EventPurchaseOffer  EventKind = "purchase_offer"
	EventPropertyBought EventKind = "property_bought"
	EventRentPaid       EventKind = "rent_paid"
	EventOfferSkipped   EventKind = "offer_skipped"
	EventTurnAwaited    EventKind = "turn_awaited"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Money       int    `json:"money"`
	PlayerCount int    `json:"player_count"`
}

// TurnOrderEntry reports one player's draw for the start-of-game ordering.
type TurnOrderEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Roll     int    `json:"roll"`
}

type GameStartedPayload struct {
	TurnOrder []TurnOrderEntry `json:"turn_order"`
}

type DiceRolledPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Die1        int    `json:"die1"`
	Die2        int    `json:"die2"`
	Total       int    `json:"total"`
	NewPosition int    `json:"new_position"`
}

type PurchaseOfferPayload struct {
	UserID   string `json:"user_id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
}

type PropertyBoughtPayload struct {
	UserID    string `json:"user_id"`
	Position  int    `json:"position"`
	Name      string `json:"name"`
	PricePaid int    `json:"price_paid"`
	MoneyLeft int    `json:"money_left"`
}

type RentPaidPayload struct {
	PayerID  string `json:"payer_id"`
	OwnerID  string `json:"owner_id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	// Partial is set when the payer could not cover the full rent and the
	// payment was clamped to their remaining cash.
	Partial bool `json:"partial"`
}

type OfferSkippedPayload struct {
	UserID   string `json:"user_id"`
	Position int    `json:"position"`
}

type TurnAwaitedPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
