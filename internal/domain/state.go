package domain

// Phase represents the lifecycle stage of a game session.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhaseActive is the state where turns cycle until the session is reset.
	PhaseActive Phase = "active"
)

// Owner identifies who holds a property. The zero value is the banker,
// the pseudo-owner for unsold, bank-held spaces.
type Owner struct {
	PlayerID string
}

// Banker is the owner of every property before it is sold.
var Banker = Owner{}

// OwnedBy returns an Owner for the given player id.
func OwnedBy(playerID string) Owner {
	return Owner{PlayerID: playerID}
}

// IsBanker reports whether the property is still bank-held.
func (o Owner) IsBanker() bool {
	return o.PlayerID == ""
}

// Player holds the state for a participant in a session.
type Player struct {
	UserID   string
	Username string
	Money    int
	Position int
	InJail   bool // reserved; no rule reads it yet
}

// PropertySpace is a purchasable board space.
type PropertySpace struct {
	Position int
	Name     string
	Price    int
	Rent     int
	Owner    Owner
}

// Offer is a pending purchase offer awaiting buy or skip from one player.
type Offer struct {
	PlayerID string
	Position int
}

// Session captures the full state of one game scope.
type Session struct {
	Phase Phase

	Players   map[string]*Player // userId -> player
	JoinOrder []string           // userIds in join order

	TurnOrder   []string // fixed at lobby->active, never recomputed
	CurrentTurn int      // index into TurnOrder

	Board map[int]*PropertySpace // position -> space

	PendingOffer *Offer
}

// NewSession creates a lobby-phase session with the given board seed.
// The seed spaces are copied so sessions never share property state.
func NewSession(seed []PropertySpace) *Session {
	board := make(map[int]*PropertySpace, len(seed))
	for _, sp := range seed {
		cp := sp
		cp.Owner = Banker
		board[sp.Position] = &cp
	}
	return &Session{
		Phase:   PhaseLobby,
		Players: make(map[string]*Player),
		Board:   board,
	}
}

// PropertyAt returns the property at a board position, or nil.
func (s *Session) PropertyAt(position int) *PropertySpace {
	return s.Board[position]
}

// CurrentPlayerID returns the userId whose turn it is, or "" before the
// turn order exists.
func (s *Session) CurrentPlayerID() string {
	if len(s.TurnOrder) == 0 {
		return ""
	}
	return s.TurnOrder[s.CurrentTurn]
}
