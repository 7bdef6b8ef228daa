package app

import (
	"errors"
	"sync"

	"monopoly/internal/domain"
)

// Service contains the game engine use-cases. It owns one session per
// scope id (a chat, group or match identifier supplied by the transport)
// and serializes every mutation on a session behind that session's lock.
type Service struct {
	dice Dice
	seed []domain.PropertySpace

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	state *domain.Session
}

// NewService constructs a Service with the provided board seed and dice
// source. A nil seed uses the built-in board; a nil dice source uses a
// time-seeded one.
func NewService(seed []domain.PropertySpace, dice Dice) *Service {
	if seed == nil {
		seed = domain.DefaultBoard()
	}
	if dice == nil {
		dice = NewDice(nil)
	}
	return &Service{
		dice:     dice,
		seed:     seed,
		sessions: make(map[string]*session),
	}
}

var (
	ErrSessionNotStarted = errors.New("session not started")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrAlreadyJoined     = errors.New("player already joined")
	ErrLobbyFull         = errors.New("lobby is full")
	ErrTooFewPlayers     = errors.New("not enough players to start")
	ErrNoPlayers         = errors.New("no players in session")
	ErrUnknownPlayer     = errors.New("player not found")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNoSuchProperty    = errors.New("no property at that position")
	ErrNotForSale        = errors.New("property not for sale")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// StartSession creates or resets the session for a scope: lobby phase,
// empty roster, freshly seeded board. Any prior game under the scope is
// discarded.
func (s *Service) StartSession(scopeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[scopeID]
	if !ok {
		s.sessions[scopeID] = &session{state: domain.NewSession(s.seed)}
		return
	}

	sess.mu.Lock()
	sess.state = domain.NewSession(s.seed)
	sess.mu.Unlock()
}

// EndSession removes a scope's session entirely.
func (s *Service) EndSession(scopeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, scopeID)
}

func (s *Service) lookup(scopeID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[scopeID]
	if !ok {
		return nil, ErrSessionNotStarted
	}
	return sess, nil
}

// Join adds a player to a lobby-phase session. The 4th join locks the
// roster, draws the turn order and activates the game in the same step.
func (s *Service) Join(scopeID, playerID, username string) ([]Event, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Duplicate and capacity checks come before the phase check so a
	// repeat join reports AlreadyJoined and a 5th player reports a full
	// table, not a started game.
	state := sess.state
	if _, ok := state.Players[playerID]; ok {
		return nil, ErrAlreadyJoined
	}
	if len(state.Players) >= domain.MaxPlayers {
		return nil, ErrLobbyFull
	}
	if state.Phase != domain.PhaseLobby {
		return nil, ErrAlreadyStarted
	}

	state.Players[playerID] = &domain.Player{
		UserID:   playerID,
		Username: username,
		Money:    domain.StartingMoney,
	}
	state.JoinOrder = append(state.JoinOrder, playerID)

	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			UserID:      playerID,
			Username:    username,
			Money:       domain.StartingMoney,
			PlayerCount: len(state.Players),
		},
	}}

	if len(state.Players) == domain.MaxPlayers {
		events = append(events, s.activate(state)...)
	}

	return events, nil
}

// Start activates a lobby early, before the roster fills up. At least
// MinPlayersToStartGame players must have joined. Owner checks belong to
// the transport, which knows who opened the room.
func (s *Service) Start(scopeID string) ([]Event, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Phase != domain.PhaseLobby {
		return nil, ErrAlreadyStarted
	}
	if len(state.Players) < MinPlayersToStartGame {
		return nil, ErrTooFewPlayers
	}

	return s.activate(state), nil
}

// activate performs the lobby->active transition: draw the turn order and
// announce the first turn. Callers hold the session lock.
func (s *Service) activate(state *domain.Session) []Event {
	entries := resolveTurnOrder(s.dice, state)
	state.Phase = domain.PhaseActive

	first := state.Players[state.TurnOrder[0]]
	return []Event{
		{
			Kind:    EventGameStarted,
			Payload: GameStartedPayload{TurnOrder: entries},
		},
		{
			Kind:    EventTurnAwaited,
			Payload: TurnAwaitedPayload{UserID: first.UserID, Username: first.Username},
		},
	}
}

// Roll performs the requesting player's turn: two dice, movement with
// wrap-around, landing resolution, then the turn passes. Rolls from anyone
// but the current player are rejected with no state change.
func (s *Service) Roll(scopeID, playerID string) ([]Event, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Phase != domain.PhaseActive {
		return nil, ErrSessionNotStarted
	}
	if len(state.TurnOrder) == 0 {
		return nil, ErrNoPlayers
	}
	if state.CurrentPlayerID() != playerID {
		return nil, ErrNotYourTurn
	}

	player := state.Players[playerID]

	// Rolling again abandons the player's own unresolved offer.
	if state.PendingOffer != nil && state.PendingOffer.PlayerID == playerID {
		state.PendingOffer = nil
	}

	die1 := s.dice.Roll()
	die2 := s.dice.Roll()
	total := die1 + die2
	player.Position = domain.Advance(player.Position, total)

	events := []Event{{
		Kind: EventDiceRolled,
		Payload: DiceRolledPayload{
			UserID:      playerID,
			Username:    player.Username,
			Die1:        die1,
			Die2:        die2,
			Total:       total,
			NewPosition: player.Position,
		},
	}}

	if ev := s.resolveLanding(state, player); ev != nil {
		events = append(events, *ev)
	}

	state.CurrentTurn = domain.NextTurn(state.CurrentTurn, len(state.TurnOrder))
	next := state.Players[state.CurrentPlayerID()]
	events = append(events, Event{
		Kind:    EventTurnAwaited,
		Payload: TurnAwaitedPayload{UserID: next.UserID, Username: next.Username},
	})

	return events, nil
}

// resolveLanding applies the effect of the space the player stopped on:
// nothing, a purchase offer delivered privately, or rent owed to the
// property's holder. Callers hold the session lock.
func (s *Service) resolveLanding(state *domain.Session, player *domain.Player) *Event {
	prop := state.PropertyAt(player.Position)
	if prop == nil || prop.Owner.PlayerID == player.UserID {
		return nil
	}

	if prop.Owner.IsBanker() {
		state.PendingOffer = &domain.Offer{PlayerID: player.UserID, Position: prop.Position}
		return &Event{
			Kind: EventPurchaseOffer,
			Payload: PurchaseOfferPayload{
				UserID:   player.UserID,
				Position: prop.Position,
				Name:     prop.Name,
				Price:    prop.Price,
			},
			Recipients: []string{player.UserID},
		}
	}

	return s.chargeRent(state, player, prop)
}

// chargeRent transfers the property's rent from the lander to its holder.
// A payer who cannot cover the full amount pays what they have and the
// receipt is marked partial; money never goes negative.
func (s *Service) chargeRent(state *domain.Session, payer *domain.Player, prop *domain.PropertySpace) *Event {
	owner := state.Players[prop.Owner.PlayerID]
	amount := prop.Rent
	partial := false
	if payer.Money < amount {
		amount = payer.Money
		partial = true
	}
	payer.Money -= amount
	owner.Money += amount

	return &Event{
		Kind: EventRentPaid,
		Payload: RentPaidPayload{
			PayerID:  payer.UserID,
			OwnerID:  owner.UserID,
			Position: prop.Position,
			Name:     prop.Name,
			Amount:   amount,
			Partial:  partial,
		},
	}
}

// Buy transfers a bank-held property at the given board position to the
// player. Purchases are all-or-nothing; a player who cannot afford the
// full price buys nothing.
func (s *Service) Buy(scopeID, playerID string, position int) ([]Event, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Phase != domain.PhaseActive {
		return nil, ErrSessionNotStarted
	}
	player, ok := state.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	prop := state.PropertyAt(position)
	if prop == nil {
		return nil, ErrNoSuchProperty
	}
	if !prop.Owner.IsBanker() {
		return nil, ErrNotForSale
	}
	if player.Money < prop.Price {
		return nil, ErrInsufficientFunds
	}

	player.Money -= prop.Price
	prop.Owner = domain.OwnedBy(playerID)

	if state.PendingOffer != nil && state.PendingOffer.Position == position {
		state.PendingOffer = nil
	}

	return []Event{{
		Kind: EventPropertyBought,
		Payload: PropertyBoughtPayload{
			UserID:    playerID,
			Position:  prop.Position,
			Name:      prop.Name,
			PricePaid: prop.Price,
			MoneyLeft: player.Money,
		},
	}}, nil
}

// SkipOffer declines the player's pending purchase offer. Skipping when no
// offer is open is a no-op; skipping an offer addressed to someone else is
// rejected.
func (s *Service) SkipOffer(scopeID, playerID string) ([]Event, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Phase != domain.PhaseActive {
		return nil, ErrSessionNotStarted
	}
	if state.PendingOffer == nil {
		return nil, nil
	}
	if state.PendingOffer.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}

	position := state.PendingOffer.Position
	state.PendingOffer = nil

	return []Event{{
		Kind:    EventOfferSkipped,
		Payload: OfferSkippedPayload{UserID: playerID, Position: position},
	}}, nil
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (s *Service) CurrentPlayer(scopeID string) (domain.Player, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return domain.Player{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Phase != domain.PhaseActive {
		return domain.Player{}, ErrSessionNotStarted
	}
	if len(state.TurnOrder) == 0 {
		return domain.Player{}, ErrNoPlayers
	}
	return *state.Players[state.CurrentPlayerID()], nil
}

// Snapshot is a read-only copy of session state for rendering and label
// updates.
type Snapshot struct {
	Phase        domain.Phase
	Players      []domain.Player // join order
	TurnOrder    []string
	CurrentTurn  int
	PendingOffer *domain.Offer
	Label        domain.LabelPayload
}

// Snapshot returns a copy of the scope's session state.
func (s *Service) Snapshot(scopeID string) (Snapshot, error) {
	sess, err := s.lookup(scopeID)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	snap := Snapshot{
		Phase:       state.Phase,
		Players:     make([]domain.Player, 0, len(state.JoinOrder)),
		TurnOrder:   append([]string(nil), state.TurnOrder...),
		CurrentTurn: state.CurrentTurn,
		Label:       domain.ComputeLabel(state),
	}
	for _, id := range state.JoinOrder {
		snap.Players = append(snap.Players, *state.Players[id])
	}
	if state.PendingOffer != nil {
		offer := *state.PendingOffer
		snap.PendingOffer = &offer
	}
	return snap, nil
}
