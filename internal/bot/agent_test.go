package bot

import "testing"

func TestNewAgentFallsBackToBalancedStyle(t *testing.T) {
	agent, err := NewAgent("bot-unknown")
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	if agent.ID != "bot-unknown" {
		t.Fatalf("agent id = %q", agent.ID)
	}
	if agent.reserve != 400 {
		t.Fatalf("fallback reserve = %d, want 400", agent.reserve)
	}
}

func TestShouldBuyKeepsReserve(t *testing.T) {
	agent := &Agent{ID: "bot-1", reserve: 400}

	if !agent.ShouldBuy(100, 500) {
		t.Fatal("refused a buy that exactly preserves the reserve")
	}
	if agent.ShouldBuy(101, 500) {
		t.Fatal("bought below the reserve")
	}
	if agent.ShouldBuy(600, 500) {
		t.Fatal("bought with insufficient cash")
	}
}

func TestIsBotRecognizesMintedIDs(t *testing.T) {
	if !IsBot("bot-3") {
		t.Fatal("bot-3 not recognized as a bot")
	}
	if IsBot("3f9c2a") {
		t.Fatal("human id flagged as a bot")
	}
}

func TestGetBotIdentityWithoutPool(t *testing.T) {
	// With no pool loaded, identities are minted on demand.
	if len(botIdentities) > 0 {
		t.Skip("identity pool loaded by another test")
	}
	id := GetBotIdentity(2)
	if id.UserID != "bot-2" || id.Style != "balanced" {
		t.Fatalf("minted identity = %+v", id)
	}
}
