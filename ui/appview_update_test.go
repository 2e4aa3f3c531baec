package ui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"wallestreet/agent"
	"wallestreet/gateway"
	appmodel "wallestreet/model"
	"wallestreet/research"
)

type stubGateway struct{}

func (stubGateway) Probe(ctx context.Context) error { return nil }
func (stubGateway) Analyze(ctx context.Context, tickers []string) (*gateway.AnalysisPayload, error) {
	return nil, nil
}

func TestSpinnerTickKeepsScrollPosition(t *testing.T) {
	dataModel := appmodel.NewModel(nil, stubGateway{}, agent.DefaultRoster(), "test")
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		dataModel.Messages = append(dataModel.Messages, research.NewUserMessage(fmt.Sprintf("message %d", i), now))
	}
	dataModel.Phase = appmodel.PhaseProbing

	av := NewAppView(nil, dataModel, nil)
	next, _ := av.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	av = next.(AppView)

	// Reader scrolled back through the transcript mid-flight.
	av.viewport.SetYOffset(3)

	next, _ = av.Update(spinner.TickMsg{Time: time.Now()})
	av = next.(AppView)

	if got := av.viewport.YOffset; got != 3 {
		t.Errorf("YOffset after spinner tick = %d, want 3", got)
	}
}
