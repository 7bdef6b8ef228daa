package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcInviteToken is the Nakama RPC id clients call to mint an invite token for a private match.
	RpcInviteToken = "invite_token"

	// MatchNameMonopoly is the authoritative match handler name registered with Nakama.
	MatchNameMonopoly = "monopoly_match"
)

// Op codes for client commands and server events.
const (
	// Client -> Server
	OpJoinGame    int64 = 1
	OpRoll        int64 = 2
	OpBuyProperty int64 = 3
	OpSkipOffer   int64 = 4
	OpStartGame   int64 = 5
	OpNewGame     int64 = 6

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpGameStarted    int64 = 102
	OpDiceRolled     int64 = 103
	OpPurchaseOffer  int64 = 104 // sent privately to the lander
	OpPropertyBought int64 = 105
	OpRentPaid       int64 = 106
	OpOfferSkipped   int64 = 107
	OpTurnAwaited    int64 = 108
	OpLobbyState     int64 = 109
	OpSessionReset   int64 = 110
	OpGameError      int64 = 111
)
