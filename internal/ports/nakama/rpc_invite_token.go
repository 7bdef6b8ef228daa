package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"monopoly/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

func inviteSecret(env map[string]string) string {
	if v := env["monopoly_invite_secret"]; v != "" {
		return v
	}
	return "test-secret"
}

func inviteIssuer(env map[string]string) string {
	if v := env["monopoly_invite_issuer"]; v != "" {
		return v
	}
	return "test-issuer"
}

// rpcInviteToken mints a signed invite for a private match.
// Payload: {"match_id": "..."}
func rpcInviteToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("Match ID required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret, issuer := inviteSecret(env), inviteIssuer(env)
	if secret == "test-secret" {
		logger.Warn("Invite credentials missing from env, using test defaults.")
	}

	token, err := app.NewInviteService(secret, issuer).GenerateToken(userID, req.MatchID, app.DefaultInviteTTL)
	if err != nil {
		logger.Error("Failed to generate invite token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	res := map[string]string{"token": token}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}
