package model

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wallestreet/config"
	"wallestreet/gateway"
	"wallestreet/research"
	"wallestreet/ticker"
)

// Submit accepts a new query, appends it to the transcript and starts the
// probe. Empty or whitespace-only input is rejected with no transition.
// Returns nil when a submission is already in flight; the UI gates Enter
// on Busy, this is the backstop.
func (m *Model) Submit(input string) tea.Cmd {
	if m.Busy() {
		return nil
	}

	query := strings.TrimSpace(input)
	if query == "" {
		return nil
	}

	m.Messages = append(m.Messages, research.NewUserMessage(query, m.now()))
	m.pendingQuery = query
	m.pendingTickers = ticker.Extract(query)
	m.Phase = PhaseProbing

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Submit: %d tickers extracted from query", len(m.pendingTickers))
	}

	gw := m.Gateway
	return func() tea.Msg {
		err := gw.Probe(context.Background())
		return ProbeResultMsg{Err: gateway.AsError(err)}
	}
}

// HandleProbeResult advances past the liveness check. A probe failure is
// terminal for the submission: the analysis call is never made. A live
// backend with no tickers in the query short-circuits to the canned
// guidance reply.
func (m *Model) HandleProbeResult(msg ProbeResultMsg) tea.Cmd {
	if m.Phase != PhaseProbing {
		return nil
	}

	if msg.Err != nil {
		m.failWith(msg.Err)
		return nil
	}

	if len(m.pendingTickers) == 0 {
		m.Messages = append(m.Messages, research.GuidanceMessage(m.now()))
		m.pendingQuery = ""
		m.Phase = PhaseReady
		return nil
	}

	m.Phase = PhaseAnalyzing

	gw := m.Gateway
	tickers := m.pendingTickers
	return func() tea.Msg {
		payload, err := gw.Analyze(context.Background(), tickers)
		return AnalysisResultMsg{Payload: payload, Err: gateway.AsError(err)}
	}
}

// HandleAnalysisResult decomposes a successful reply into transcript
// messages and replaces the current bundle. On failure the transcript and
// the previous bundle stay exactly as they were.
func (m *Model) HandleAnalysisResult(msg AnalysisResultMsg) tea.Cmd {
	if m.Phase != PhaseAnalyzing {
		return nil
	}

	if msg.Err != nil {
		m.failWith(msg.Err)
		return nil
	}

	m.Phase = PhaseDecomposing
	messages, bundle := research.Decompose(m.pendingTickers, msg.Payload, m.Roster, m.pendingQuery, m.now())
	m.Messages = append(m.Messages, messages...)
	m.Bundle = bundle

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Analysis decomposed into %d messages", len(messages))
	}

	m.pendingQuery = ""
	m.pendingTickers = nil
	m.Phase = PhaseReady
	return nil
}
