package research

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"wallestreet/agent"
	"wallestreet/gateway"
)

var testTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func decodePayload(t *testing.T, raw string) *gateway.AnalysisPayload {
	t.Helper()
	var payload gateway.AnalysisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return &payload
}

func TestDecomposeAnalystMessages(t *testing.T) {
	payload := decodePayload(t, `{
		"Warren Buffett": {"signals": {
			"AAPL": {"signal": "bullish", "reasoning": "durable moat and pricing power", "confidence": 85},
			"TSLA": {"signal": "bearish", "reasoning": "priced for perfection", "confidence": 72.5}
		}}
	}`)

	messages, bundle := Decompose([]string{"AAPL", "TSLA"}, payload, agent.DefaultRoster(), "thoughts on AAPL and TSLA?", testTime)

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	first := messages[0]
	if first.Agent == nil || first.Agent.Name != "Warren Buffett" {
		t.Errorf("first message agent = %v, want Warren Buffett", first.Agent)
	}
	if first.Content != "AAPL: BULLISH - durable moat and pricing power" {
		t.Errorf("content = %q", first.Content)
	}
	wantPoints := []string{"Signal: BULLISH", "Confidence: 85%"}
	if !reflect.DeepEqual(first.Points, wantPoints) {
		t.Errorf("points = %v, want %v", first.Points, wantPoints)
	}

	second := messages[1]
	if second.Content != "TSLA: BEARISH - priced for perfection" {
		t.Errorf("content = %q", second.Content)
	}
	if second.Points[1] != "Confidence: 72.5%" {
		t.Errorf("fractional confidence = %q, want 72.5%%", second.Points[1])
	}

	if bundle.Query != "thoughts on AAPL and TSLA?" {
		t.Errorf("bundle query = %q", bundle.Query)
	}
	if len(bundle.Responses) != 2 {
		t.Fatalf("bundle has %d responses, want 2", len(bundle.Responses))
	}
	if bundle.Responses[0].Agent != "Warren Buffett" || bundle.Responses[0].Content != first.Content {
		t.Errorf("bundle response mismatch: %+v", bundle.Responses[0])
	}
	if !bundle.GeneratedAt.Equal(testTime) {
		t.Errorf("GeneratedAt = %v, want %v", bundle.GeneratedAt, testTime)
	}
}

func TestDecomposeManagerMessages(t *testing.T) {
	payload := decodePayload(t, `{
		"Portfolio Manager": {"decisions": {
			"NVDA": {"action": "buy", "reasoning": "momentum and earnings strength", "quantity": 25, "confidence": 90}
		}}
	}`)

	messages, _ := Decompose([]string{"NVDA"}, payload, agent.DefaultRoster(), "should I buy NVDA?", testTime)

	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	msg := messages[0]
	if msg.Agent.Name != "Portfolio Manager" || !msg.Agent.IsManager {
		t.Errorf("agent = %+v, want the portfolio manager", msg.Agent)
	}
	if msg.Content != "NVDA: BUY - momentum and earnings strength" {
		t.Errorf("content = %q", msg.Content)
	}
	wantPoints := []string{"Action: BUY", "Quantity: 25 shares", "Confidence: 90%"}
	if !reflect.DeepEqual(msg.Points, wantPoints) {
		t.Errorf("points = %v, want %v", msg.Points, wantPoints)
	}
}

func TestDecomposeMissingConfidenceDefaultsToZero(t *testing.T) {
	payload := decodePayload(t, `{
		"Ben Graham": {"signals": {"KO": {"signal": "neutral", "reasoning": "fairly priced"}}}
	}`)

	messages, _ := Decompose([]string{"KO"}, payload, agent.DefaultRoster(), "KO?", testTime)
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if got := messages[0].Points[1]; got != "Confidence: 0%" {
		t.Errorf("absent confidence rendered as %q, want 0%%", got)
	}
}

func TestDecomposeSkipsAbsentTickers(t *testing.T) {
	payload := decodePayload(t, `{
		"Cathie Wood": {"signals": {"TSLA": {"signal": "bullish", "reasoning": "innovation premium", "confidence": 88}}}
	}`)

	// AAPL was requested but this agent only covered TSLA.
	messages, _ := Decompose([]string{"AAPL", "TSLA"}, payload, agent.DefaultRoster(), "AAPL TSLA", testTime)
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1 (no placeholder for AAPL)", len(messages))
	}
	if messages[0].Content != "TSLA: BULLISH - innovation premium" {
		t.Errorf("content = %q", messages[0].Content)
	}
}

func TestDecomposeDropsUnknownAgentsAndShapes(t *testing.T) {
	payload := decodePayload(t, `{
		"Jim Cramer": {"signals": {"AAPL": {"signal": "bullish", "reasoning": "booyah", "confidence": 99}}},
		"Warren Buffett": {"notes": "malformed record"},
		"Bill Ackman": {"signals": {"AAPL": {"signal": "bearish", "reasoning": "activist angle missing", "confidence": 60}}}
	}`)

	messages, bundle := Decompose([]string{"AAPL"}, payload, agent.DefaultRoster(), "AAPL", testTime)
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if messages[0].Agent.Name != "Bill Ackman" {
		t.Errorf("surviving agent = %q, want Bill Ackman", messages[0].Agent.Name)
	}
	if len(bundle.Responses) != 1 {
		t.Errorf("bundle has %d responses, want 1", len(bundle.Responses))
	}
}

func TestDecomposeFollowsPayloadOrder(t *testing.T) {
	raw := `{
		"Cathie Wood": {"signals": {"AAPL": {"signal": "bullish", "reasoning": "a", "confidence": 1}}},
		"Warren Buffett": {"signals": {"AAPL": {"signal": "neutral", "reasoning": "b", "confidence": 2}}},
		"Portfolio Manager": {"decisions": {"AAPL": {"action": "hold", "reasoning": "c", "quantity": 0, "confidence": 3}}}
	}`

	wantAgents := []string{"Cathie Wood", "Warren Buffett", "Portfolio Manager"}
	for i := 0; i < 10; i++ {
		messages, _ := Decompose([]string{"AAPL"}, decodePayload(t, raw), agent.DefaultRoster(), "AAPL", testTime)
		if len(messages) != len(wantAgents) {
			t.Fatalf("run %d: got %d messages, want %d", i, len(messages), len(wantAgents))
		}
		for j, want := range wantAgents {
			if messages[j].Agent.Name != want {
				t.Fatalf("run %d: message[%d] agent = %q, want %q", i, j, messages[j].Agent.Name, want)
			}
		}
	}
}

func TestGuidanceMessage(t *testing.T) {
	msg := GuidanceMessage(testTime)
	if msg.Role != RoleAgent {
		t.Errorf("role = %q, want agent", msg.Role)
	}
	if msg.Agent == nil || msg.Agent.ID != "system" {
		t.Errorf("agent = %v, want the system pseudo-agent", msg.Agent)
	}
	if msg.Content != GuidanceText {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestNewUserMessage(t *testing.T) {
	a := NewUserMessage("hello", testTime)
	b := NewUserMessage("hello", testTime)
	if a.ID == b.ID {
		t.Error("consecutive messages share an ID")
	}
	if a.Role != RoleUser || a.Agent != nil {
		t.Errorf("user message = %+v", a)
	}
}
