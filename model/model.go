package model

import (
	"context"
	"time"

	"wallestreet/agent"
	"wallestreet/config"
	"wallestreet/gateway"
	"wallestreet/research"
)

// Phase is the single lifecycle state of the current submission. Exactly
// one submission is in flight at a time; the UI refuses input while Busy.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProbing
	PhaseAnalyzing
	PhaseDecomposing
	PhaseReady
	PhaseError
)

// Gateway is the slice of the analysis backend the orchestrator needs.
// Defined here rather than in the gateway package so tests can substitute
// a fake without an import cycle.
type Gateway interface {
	Probe(ctx context.Context) error
	Analyze(ctx context.Context, tickers []string) (*gateway.AnalysisPayload, error)
}

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config  *config.Config
	Gateway Gateway
	Roster  *agent.Roster

	// Application data
	Messages []research.Message
	Bundle   *research.ResultBundle

	// Runtime state (not UI)
	Phase     Phase
	LastError *gateway.Error
	Quitting  bool

	// In-flight submission, valid between Submit and the terminal phase
	pendingQuery   string
	pendingTickers []string

	// AuthURLFunc builds the re-authentication URL attached to
	// auth-required failures; nil when document export is unconfigured.
	AuthURLFunc func() string

	// now is swappable for tests
	now func() time.Time

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration
func NewModel(cfg *config.Config, gw Gateway, roster *agent.Roster, version string) *Model {
	return &Model{
		Config:  cfg,
		Gateway: gw,
		Roster:  roster,
		Phase:   PhaseIdle,
		now:     time.Now,
		Version: version,
	}
}

// Busy reports whether a submission is in flight. The UI ignores Enter
// while Busy, which is what makes submissions single-flight.
func (m *Model) Busy() bool {
	switch m.Phase {
	case PhaseProbing, PhaseAnalyzing, PhaseDecomposing:
		return true
	}
	return false
}

// PendingTickers returns the ticker set of the in-flight submission.
func (m *Model) PendingTickers() []string {
	return m.pendingTickers
}

// DismissError acknowledges the current error and returns to accepting
// input. The transcript and the last good bundle are untouched; errors
// never roll anything back.
func (m *Model) DismissError() {
	if m.Phase != PhaseError {
		return
	}
	m.LastError = nil
	m.Phase = PhaseIdle
}

func (m *Model) failWith(gerr *gateway.Error) {
	if gerr.Kind == gateway.KindAuthRequired && gerr.AuthURL == "" && m.AuthURLFunc != nil {
		gerr.AuthURL = m.AuthURLFunc()
	}
	m.LastError = gerr
	m.Phase = PhaseError
	m.pendingQuery = ""
	m.pendingTickers = nil
}
