package app

import (
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestInviteTokenRoundTrip(t *testing.T) {
	svc := NewInviteService("test-secret", "test-issuer")

	token, err := svc.GenerateToken("u1", "match-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if err := svc.VerifyToken(token, "match-1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestInviteTokenRejectsOtherMatch(t *testing.T) {
	svc := NewInviteService("test-secret", "test-issuer")

	token, err := svc.GenerateToken("u1", "match-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.VerifyToken(token, "match-2"); err == nil {
		t.Fatal("token for match-1 accepted by match-2")
	}
}

func TestInviteTokenRejectsWrongSecret(t *testing.T) {
	minter := NewInviteService("secret-a", "test-issuer")
	verifier := NewInviteService("secret-b", "test-issuer")

	token, err := minter.GenerateToken("u1", "match-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := verifier.VerifyToken(token, "match-1"); err == nil {
		t.Fatal("token signed with the wrong secret accepted")
	}
}

func TestInviteTokenRejectsExpired(t *testing.T) {
	svc := NewInviteService("test-secret", "test-issuer")

	claims := jwt.MapClaims{
		"iss": "test-issuer",
		"sub": "u1",
		"mid": "match-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := svc.VerifyToken(token, "match-1"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestGenerateTokenRequiresMatchID(t *testing.T) {
	svc := NewInviteService("test-secret", "test-issuer")
	if _, err := svc.GenerateToken("u1", "", time.Hour); err == nil {
		t.Fatal("token minted without a match id")
	}
}
