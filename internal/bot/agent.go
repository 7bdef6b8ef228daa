package bot

// Agent is an autonomous seat-filler. Its whole game is rolling on its
// turn and deciding whether a purchase offer is worth taking.
type Agent struct {
	ID   string
	Name string

	// reserve is the cash floor the agent keeps after any purchase.
	reserve int
}

// NewAgent builds an agent for a bot user id, using the identity pool's
// style when available.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := GetBotConfig(userID)
	if !ok {
		identity = BotIdentity{UserID: userID, Username: userID, Style: "balanced"}
	}

	reserve := 400
	switch identity.Style {
	case "cautious":
		reserve = 700
	case "aggressive":
		reserve = 100
	}

	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}

	return &Agent{ID: userID, Name: name, reserve: reserve}, nil
}

// ShouldBuy reports whether the agent takes an offer at the given price
// with the given cash on hand.
func (a *Agent) ShouldBuy(price, money int) bool {
	return money-price >= a.reserve
}
