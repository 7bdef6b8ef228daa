package nakama

import (
	"context"
	"database/sql"

	"monopoly/internal/app"
	"monopoly/internal/bot"
	"monopoly/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler for the Nakama runtime.
// One engine service is shared by every match; each match owns one engine
// session keyed by its match id.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/board.json"); err != nil {
		logger.Warn("InitModule: Could not load game config: %v", err)
	}

	svc := app.NewService(config.BoardSeed(), nil)

	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcInviteToken, rpcInviteToken); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameMonopoly, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(svc), nil
	}); err != nil {
		return err
	}

	logger.Info("Monopoly Go module loaded.")
	return nil
}
