package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"

	"monopoly/internal/app"
	"monopoly/internal/bot"
	"monopoly/internal/config"
	"monopoly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// MatchState holds the transport-side runtime state for one match. The
// game state itself lives in the shared engine, keyed by this match's id.
type MatchState struct {
	ScopeID     string                      `json:"scope_id"`
	OwnerUserID string                      `json:"owner_user_id"`
	Private     bool                        `json:"private"`
	Tick        int64                       `json:"tick"`
	Presences   map[string]runtime.Presence `json:"-"`
	Invites     *app.InviteService          `json:"-"`

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`
	BotMaxDelay          int                   `json:"bot_max_delay"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                 `json:"bot_wait_until"`
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`
}

type matchHandler struct {
	svc *app.Service
}

// newMatchHandler builds a handler bound to the shared game engine.
func newMatchHandler(svc *app.Service) *matchHandler {
	return &matchHandler{svc: svc}
}

// humanCount returns the number of joined players that are not bots.
func humanCount(players []domain.Player) int {
	count := 0
	for _, p := range players {
		if !bot.IsBot(p.UserID) {
			count++
		}
	}
	return count
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	scopeID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	private, _ := params["private"].(bool)

	state := &MatchState{
		ScopeID:   scopeID,
		Private:   private,
		Presences: make(map[string]runtime.Presence),
		Bots:      make(map[string]*bot.Agent),
	}

	// File config supplies bot pacing defaults; env vars override.
	if gc := config.GetGameConfig(); gc != nil {
		state.BotMinDelay = gc.BotMinDelaySeconds
		state.BotMaxDelay = gc.BotMaxDelaySeconds
		state.BotAutoFillDelay = gc.BotAutoFillDelaySeconds
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["monopoly_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["monopoly_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["monopoly_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["monopoly_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	state.Invites = app.NewInviteService(inviteSecret(env), inviteIssuer(env))

	mh.svc.StartSession(scopeID)

	label, err := marshalLabel(domain.LabelPayload{Open: !private, Game: "monopoly", Phase: string(domain.PhaseLobby)})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

// marshalLabel renders the advertised label as JSON through a protobuf
// Struct, so the label document stays queryable by Nakama's match listing.
func marshalLabel(label domain.LabelPayload) (string, error) {
	st, err := structpb.NewStruct(map[string]interface{}{
		"open":  label.Open,
		"game":  label.Game,
		"phase": label.Phase,
	})
	if err != nil {
		return "", err
	}
	bytes, err := protojson.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Private {
		token := metadata["invite_token"]
		if token == "" {
			return state, false, "invite required"
		}
		if err := matchState.Invites.VerifyToken(token, matchState.ScopeID); err != nil {
			logger.Warn("MatchJoinAttempt: Invalid invite from %s: %v", presence.GetUserId(), err)
			return state, false, "invalid invite"
		}
	}

	snap, err := mh.svc.Snapshot(matchState.ScopeID)
	if err != nil {
		return state, false, "session not found"
	}

	// Once the game is running, only players already in the roster may
	// reconnect; the room stays open to everyone while in the lobby.
	if snap.Phase != domain.PhaseLobby {
		for _, p := range snap.Players {
			if p.UserID == presence.GetUserId() {
				return state, true, ""
			}
		}
		return state, false, "match_in_progress"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// The first human in the room owns it and may start or reset games.
		if matchState.OwnerUserID == "" && !bot.IsBot(p.GetUserId()) {
			matchState.OwnerUserID = p.GetUserId()
			logger.Debug("MatchJoin: Owner set to %s.", matchState.OwnerUserID)
		}
	}

	mh.broadcastLobbyState(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more presences leave the room. Joined
// players stay in the game roster and may reconnect.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		if matchState.OwnerUserID == p.GetUserId() {
			matchState.OwnerUserID = ""
		}
	}

	// Reassign ownership to any remaining human.
	if matchState.OwnerUserID == "" {
		for userID := range matchState.Presences {
			if !bot.IsBot(userID) {
				matchState.OwnerUserID = userID
				logger.Debug("MatchLeave: Owner set to %s.", userID)
				break
			}
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match %s.", matchState.ScopeID)
		mh.svc.EndSession(matchState.ScopeID)
		return nil
	}

	mh.broadcastLobbyState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpJoinGame:
			mh.handleJoinGame(matchState, dispatcher, logger, msg)
		case OpRoll:
			mh.handleRoll(matchState, dispatcher, logger, msg)
		case OpBuyProperty:
			mh.handleBuy(matchState, dispatcher, logger, msg)
		case OpSkipOffer:
			mh.handleSkip(matchState, dispatcher, logger, msg)
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpNewGame:
			mh.handleNewGame(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleJoinGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := mh.svc.Join(state.ScopeID, senderID, msg.GetUsername())
	if err != nil {
		logger.Warn("handleJoinGame: User %s failed to join: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) handleRoll(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := mh.svc.Roll(state.ScopeID, senderID)
	if err != nil {
		logger.Warn("handleRoll: User %s failed to roll: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleBuy(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var payload struct {
		Position int `json:"position"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("handleBuy: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errors.New("invalid buy payload"))
		return
	}

	events, err := mh.svc.Buy(state.ScopeID, senderID, payload.Position)
	if err != nil {
		logger.Warn("handleBuy: User %s failed to buy position %d: %v", senderID, payload.Position, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSkip(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := mh.svc.SkipOffer(state.ScopeID, senderID)
	if err != nil {
		logger.Warn("handleSkip: User %s failed to skip: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.OwnerUserID {
		logger.Warn("handleStartGame: User %s tried to start game but is not owner.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errors.New("only the room owner can start the game"))
		return
	}

	events, err := mh.svc.Start(state.ScopeID)
	if err != nil {
		logger.Warn("handleStartGame: Failed to start: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) handleNewGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.OwnerUserID {
		logger.Warn("handleNewGame: User %s tried to reset game but is not owner.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errors.New("only the room owner can reset the game"))
		return
	}

	mh.svc.StartSession(state.ScopeID)
	state.Bots = make(map[string]*bot.Agent)
	state.LastSinglePlayerTick = 0
	state.BotWaitUntil = 0

	if err := dispatcher.BroadcastMessage(OpSessionReset, nil, nil, nil, true); err != nil {
		logger.Error("handleNewGame: Broadcast failed: %v", err)
	}
	mh.broadcastLobbyState(state, dispatcher, logger)
	mh.updateLabel(state, dispatcher, logger)
}

// processBots fills a lonely lobby with AI players and plays their turns.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snap, err := mh.svc.Snapshot(state.ScopeID)
	if err != nil {
		return
	}

	if snap.Phase == domain.PhaseLobby {
		if humanCount(snap.Players) == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				mh.fillLobbyWithBots(state, dispatcher, logger, len(snap.Players))
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	if len(snap.TurnOrder) == 0 {
		return
	}
	currentID := snap.TurnOrder[snap.CurrentTurn]
	if !bot.IsBot(currentID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentID]
	if !exists {
		agent, err = bot.NewAgent(currentID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentID] = agent
	}

	events, err := mh.svc.Roll(state.ScopeID, currentID)
	if err != nil {
		logger.Error("processBots: Bot %s failed to roll: %v", currentID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)

	// Settle any offer the roll produced right away; bots do not dither.
	for _, ev := range events {
		offer, ok := ev.Payload.(app.PurchaseOfferPayload)
		if !ok || offer.UserID != currentID {
			continue
		}

		money := 0
		for _, p := range snap.Players {
			if p.UserID == currentID {
				money = p.Money
				break
			}
		}

		var followUp []app.Event
		if agent.ShouldBuy(offer.Price, money) {
			followUp, err = mh.svc.Buy(state.ScopeID, currentID, offer.Position)
		} else {
			followUp, err = mh.svc.SkipOffer(state.ScopeID, currentID)
		}
		if err != nil {
			logger.Warn("processBots: Bot %s failed to settle offer: %v", currentID, err)
			continue
		}
		mh.broadcastEvents(state, dispatcher, logger, followUp)
	}
}

func (mh *matchHandler) fillLobbyWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, joined int) {
	for i := joined; i < domain.MaxPlayers; i++ {
		identity := bot.GetBotIdentity(i)

		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			logger.Error("fillLobbyWithBots: Failed to create agent for %s: %v", identity.UserID, err)
			continue
		}

		name := identity.DisplayName
		if name == "" {
			name = identity.Username
		}
		events, err := mh.svc.Join(state.ScopeID, identity.UserID, name)
		if err != nil {
			logger.Warn("fillLobbyWithBots: Bot %s could not join: %v", identity.UserID, err)
			continue
		}
		state.Bots[identity.UserID] = agent

		logger.Info("fillLobbyWithBots: Added bot %s (%s).", name, identity.UserID)
		mh.broadcastEvents(state, dispatcher, logger, events)
	}
	mh.updateLabel(state, dispatcher, logger)
}

// broadcastEvents dispatches engine events as opcode messages. Targeted
// events go only to their connected recipients; events aimed solely at
// bots are not sent at all.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := eventOpCode(ev.Kind)
		if !ok {
			logger.Warn("broadcastEvents: Unknown event kind: %v", ev.Kind)
			continue
		}

		bytes, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("broadcastEvents: Failed to marshal %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
			logger.Error("broadcastEvents: Broadcast failed for %v: %v", ev.Kind, err)
		}
	}
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snap, err := mh.svc.Snapshot(state.ScopeID)
	if err != nil {
		return
	}

	payload := wireLobbyState{
		Phase:       string(snap.Phase),
		Players:     toWirePlayers(snap.Players),
		OwnerUserID: state.OwnerUserID,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastLobbyState: Failed to marshal: %v", err)
		return
	}

	if err := dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true); err != nil {
		logger.Error("broadcastLobbyState: Broadcast failed: %v", err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, gameErr error) {
	payload := map[string]string{"message": gameErr.Error()}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendError: Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snap, err := mh.svc.Snapshot(state.ScopeID)
	if err != nil {
		return
	}

	labelPayload := snap.Label
	if state.Private {
		labelPayload.Open = false
	}
	label, err := marshalLabel(labelPayload)
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.svc.EndSession(matchState.ScopeID)
	}
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
