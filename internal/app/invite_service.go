package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// InviteService mints and verifies signed invite tokens for private
// matches. A token grants entry to one match scope and expires on its own;
// it is a room key, not an identity.
type InviteService struct {
	secret string
	issuer string
}

// DefaultInviteTTL bounds how long an invite link stays usable.
const DefaultInviteTTL = 24 * time.Hour

func NewInviteService(secret, issuer string) *InviteService {
	return &InviteService{secret: secret, issuer: issuer}
}

// GenerateToken signs an invite for the given user and match scope.
func (s *InviteService) GenerateToken(userID, matchID string, ttl time.Duration) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite config is incomplete")
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"mid": matchID,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken checks an invite's signature, expiry and target match.
func (s *InviteService) VerifyToken(tokenString, matchID string) error {
	if s == nil {
		return fmt.Errorf("invite service is nil")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return fmt.Errorf("parse invite token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid invite token")
	}
	if mid, _ := claims["mid"].(string); mid != matchID {
		return fmt.Errorf("invite token is for a different match")
	}
	return nil
}
