package model

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wallestreet/agent"
	"wallestreet/gateway"
	"wallestreet/research"
)

type fakeGateway struct {
	probeErr   error
	analyzeErr error
	payload    *gateway.AnalysisPayload

	probeCalls   int
	analyzeCalls int
	gotTickers   []string
}

func (f *fakeGateway) Probe(ctx context.Context) error {
	f.probeCalls++
	return f.probeErr
}

func (f *fakeGateway) Analyze(ctx context.Context, tickers []string) (*gateway.AnalysisPayload, error) {
	f.analyzeCalls++
	f.gotTickers = tickers
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.payload, nil
}

func newTestModel(gw Gateway) *Model {
	m := NewModel(nil, gw, agent.DefaultRoster(), "test")
	m.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	return m
}

// run executes a command pipeline to completion, dispatching each message
// back into the model the way the UI update loop does.
func run(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		switch msg := cmd().(type) {
		case ProbeResultMsg:
			cmd = m.HandleProbeResult(msg)
		case AnalysisResultMsg:
			cmd = m.HandleAnalysisResult(msg)
		default:
			cmd = nil
		}
	}
}

func analystPayload(t *testing.T) *gateway.AnalysisPayload {
	t.Helper()
	raw := `{
		"Warren Buffett": {"signals": {"AAPL": {"signal": "bullish", "reasoning": "moat", "confidence": 85}}},
		"Portfolio Manager": {"decisions": {"AAPL": {"action": "buy", "reasoning": "consensus", "quantity": 10, "confidence": 80}}}
	}`
	var payload gateway.AnalysisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return &payload
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(gw)

	for _, input := range []string{"", "   ", "\t\n"} {
		if cmd := m.Submit(input); cmd != nil {
			t.Errorf("Submit(%q) returned a command", input)
		}
	}
	if m.Phase != PhaseIdle {
		t.Errorf("Phase = %v, want PhaseIdle", m.Phase)
	}
	if len(m.Messages) != 0 {
		t.Errorf("transcript has %d messages, want 0", len(m.Messages))
	}
	if gw.probeCalls != 0 {
		t.Errorf("probe called %d times for empty input", gw.probeCalls)
	}
}

func TestSubmitRejectedWhileBusy(t *testing.T) {
	m := newTestModel(&fakeGateway{})

	cmd := m.Submit("analyze AAPL")
	if cmd == nil {
		t.Fatal("first Submit returned nil")
	}
	if m.Phase != PhaseProbing {
		t.Fatalf("Phase = %v, want PhaseProbing", m.Phase)
	}

	if second := m.Submit("analyze TSLA"); second != nil {
		t.Error("Submit accepted while a submission was in flight")
	}
	if len(m.Messages) != 1 {
		t.Errorf("transcript has %d messages, want 1", len(m.Messages))
	}
}

func TestProbeFailureShortCircuitsAnalysis(t *testing.T) {
	gw := &fakeGateway{probeErr: &gateway.Error{Kind: gateway.KindLiveness, Title: "API Server Not Running"}}
	m := newTestModel(gw)

	run(m, m.Submit("analyze AAPL"))

	if m.Phase != PhaseError {
		t.Fatalf("Phase = %v, want PhaseError", m.Phase)
	}
	if gw.analyzeCalls != 0 {
		t.Errorf("analyze called %d times after a failed probe, want 0", gw.analyzeCalls)
	}
	if m.LastError == nil || m.LastError.Kind != gateway.KindLiveness {
		t.Errorf("LastError = %+v, want the liveness error", m.LastError)
	}
	// The user's message stays; errors never roll the transcript back.
	if len(m.Messages) != 1 || m.Messages[0].Role != research.RoleUser {
		t.Errorf("transcript = %+v, want the user message only", m.Messages)
	}
}

func TestNoTickersYieldsGuidance(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(gw)
	previous := &research.ResultBundle{Query: "earlier run"}
	m.Bundle = previous

	// every word longer than five letters, so extraction finds nothing
	run(m, m.Submit("thoughts regarding semiconductor manufacturers currently?"))

	if m.Phase != PhaseReady {
		t.Fatalf("Phase = %v, want PhaseReady", m.Phase)
	}
	if gw.analyzeCalls != 0 {
		t.Errorf("analyze called %d times without tickers", gw.analyzeCalls)
	}
	if len(m.Messages) != 2 {
		t.Fatalf("transcript has %d messages, want user + guidance", len(m.Messages))
	}
	guidance := m.Messages[1]
	if guidance.Content != research.GuidanceText {
		t.Errorf("guidance content = %q", guidance.Content)
	}
	if guidance.Agent == nil || guidance.Agent.ID != "system" {
		t.Errorf("guidance agent = %v, want system", guidance.Agent)
	}
	if m.Bundle != previous {
		t.Error("guidance path replaced the bundle")
	}
}

func TestSuccessfulAnalysis(t *testing.T) {
	gw := &fakeGateway{payload: analystPayload(t)}
	m := newTestModel(gw)

	run(m, m.Submit("analyze AAPL please"))

	if m.Phase != PhaseReady {
		t.Fatalf("Phase = %v, want PhaseReady", m.Phase)
	}
	if gw.probeCalls != 1 || gw.analyzeCalls != 1 {
		t.Errorf("probe/analyze calls = %d/%d, want 1/1", gw.probeCalls, gw.analyzeCalls)
	}

	found := false
	for _, tk := range gw.gotTickers {
		if tk == "AAPL" {
			found = true
		}
	}
	if !found {
		t.Errorf("analyze tickers = %v, missing AAPL", gw.gotTickers)
	}

	// user message + one per (agent, ticker) pair in the payload
	if len(m.Messages) != 3 {
		t.Fatalf("transcript has %d messages, want 3", len(m.Messages))
	}
	if m.Bundle == nil {
		t.Fatal("no bundle after a successful run")
	}
	if m.Bundle.Query != "analyze AAPL please" {
		t.Errorf("bundle query = %q", m.Bundle.Query)
	}
	if len(m.Bundle.Responses) != 2 {
		t.Errorf("bundle has %d responses, want 2", len(m.Bundle.Responses))
	}
}

func TestRepeatedSubmissionReplacesBundle(t *testing.T) {
	gw := &fakeGateway{payload: analystPayload(t)}
	m := newTestModel(gw)

	run(m, m.Submit("analyze AAPL"))
	if m.Phase != PhaseReady {
		t.Fatalf("Phase after first run = %v, want PhaseReady", m.Phase)
	}
	first := m.Bundle
	if first == nil || len(first.Responses) != 2 {
		t.Fatalf("first bundle = %+v, want 2 responses", first)
	}

	run(m, m.Submit("analyze AAPL"))
	if m.Phase != PhaseReady {
		t.Fatalf("Phase after second run = %v, want PhaseReady", m.Phase)
	}
	second := m.Bundle
	if second == first {
		t.Fatal("second run did not replace the bundle")
	}
	if len(second.Responses) != 2 {
		t.Fatalf("second bundle has %d responses, want 2", len(second.Responses))
	}
	if !reflect.DeepEqual(second.Responses, first.Responses) {
		t.Errorf("responses differ between identical runs:\n%+v\n%+v", first.Responses, second.Responses)
	}

	// Each run appends its user message followed by that run's agent
	// messages; runs never interleave.
	if len(m.Messages) != 6 {
		t.Fatalf("transcript has %d messages, want 6", len(m.Messages))
	}
	for i, idx := range []int{0, 3} {
		if m.Messages[idx].Role != research.RoleUser {
			t.Errorf("message[%d] role = %q, want the run %d user message", idx, m.Messages[idx].Role, i+1)
		}
	}
	for _, idx := range []int{1, 2, 4, 5} {
		if m.Messages[idx].Role != research.RoleAgent {
			t.Errorf("message[%d] role = %q, want an agent message", idx, m.Messages[idx].Role)
		}
	}
	if m.Messages[1].Content != m.Messages[4].Content || m.Messages[2].Content != m.Messages[5].Content {
		t.Error("identical submissions produced different agent messages")
	}
}

func TestAnalysisFailureKeepsTranscriptAndBundle(t *testing.T) {
	gw := &fakeGateway{analyzeErr: &gateway.Error{Kind: gateway.KindAnalysis, Title: "Stock Analysis Failed", Message: "no price data"}}
	m := newTestModel(gw)
	previous := &research.ResultBundle{Query: "earlier run"}
	m.Bundle = previous

	run(m, m.Submit("analyze FAKE"))

	if m.Phase != PhaseError {
		t.Fatalf("Phase = %v, want PhaseError", m.Phase)
	}
	if m.LastError == nil || m.LastError.Kind != gateway.KindAnalysis {
		t.Errorf("LastError = %+v", m.LastError)
	}
	if len(m.Messages) != 1 {
		t.Errorf("transcript has %d messages, want the user message only", len(m.Messages))
	}
	if m.Bundle != previous {
		t.Error("failed analysis replaced the bundle")
	}
}

func TestAuthFailureCarriesAuthURL(t *testing.T) {
	gw := &fakeGateway{analyzeErr: &gateway.Error{Kind: gateway.KindAuthRequired, Title: "Authentication Required"}}
	m := newTestModel(gw)
	m.AuthURLFunc = func() string { return "https://accounts.example.com/consent" }

	run(m, m.Submit("analyze AAPL"))

	if m.Phase != PhaseError {
		t.Fatalf("Phase = %v, want PhaseError", m.Phase)
	}
	if m.LastError.AuthURL != "https://accounts.example.com/consent" {
		t.Errorf("AuthURL = %q, want the constructed consent URL", m.LastError.AuthURL)
	}
}

func TestDismissErrorReturnsToIdle(t *testing.T) {
	gw := &fakeGateway{probeErr: &gateway.Error{Kind: gateway.KindLiveness}}
	m := newTestModel(gw)

	run(m, m.Submit("analyze AAPL"))
	if m.Phase != PhaseError {
		t.Fatalf("Phase = %v, want PhaseError", m.Phase)
	}

	m.DismissError()
	if m.Phase != PhaseIdle || m.LastError != nil {
		t.Errorf("after dismiss: Phase = %v, LastError = %v", m.Phase, m.LastError)
	}

	// The model accepts a fresh submission straight away.
	gw.probeErr = nil
	run(m, m.Submit("what about the market?"))
	if m.Phase != PhaseReady {
		t.Errorf("Phase after resubmit = %v, want PhaseReady", m.Phase)
	}
}

func TestStaleResultsIgnored(t *testing.T) {
	m := newTestModel(&fakeGateway{})

	if cmd := m.HandleProbeResult(ProbeResultMsg{}); cmd != nil {
		t.Error("probe result handled outside PhaseProbing")
	}
	if cmd := m.HandleAnalysisResult(AnalysisResultMsg{Payload: analystPayload(t)}); cmd != nil {
		t.Error("analysis result handled outside PhaseAnalyzing")
	}
	if m.Phase != PhaseIdle {
		t.Errorf("Phase = %v, want PhaseIdle", m.Phase)
	}
	if len(m.Messages) != 0 || m.Bundle != nil {
		t.Error("stale result mutated model state")
	}
}

func TestUnknownErrorWrapped(t *testing.T) {
	gw := &fakeGateway{probeErr: context.DeadlineExceeded}
	m := newTestModel(gw)

	run(m, m.Submit("analyze AAPL"))

	if m.LastError == nil || m.LastError.Kind != gateway.KindUnknown {
		t.Fatalf("LastError = %+v, want a wrapped unknown error", m.LastError)
	}
	if m.LastError.Detail == "" {
		t.Error("wrapped error lost the underlying message")
	}
}
