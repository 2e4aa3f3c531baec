package research

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"wallestreet/agent"
	"wallestreet/gateway"
)

// Decompose fans a batched analysis payload out into one transcript message
// per (agent, ticker) pair, plus the result bundle built from the same
// messages. Agents are visited in payload order, tickers in request order;
// tickers absent from an agent's map are skipped without placeholders.
// Payload entries naming agents outside the roster, or matching neither
// record shape, are dropped silently.
func Decompose(tickers []string, payload *gateway.AnalysisPayload, roster *agent.Roster, query string, now time.Time) ([]Message, *ResultBundle) {
	var messages []Message

	payload.Each(func(agentName string, result gateway.AgentResult) {
		ag, ok := roster.ByName(agentName)
		if !ok {
			return
		}

		switch result.Shape {
		case gateway.ShapeManager:
			for _, ticker := range tickers {
				decision, ok := result.Decisions[ticker]
				if !ok {
					continue
				}
				action := strings.ToUpper(decision.Action)
				messages = append(messages, Message{
					ID:      uuid.NewString(),
					Role:    RoleAgent,
					Agent:   ag,
					Content: fmt.Sprintf("%s: %s - %s", ticker, action, decision.Reasoning),
					Points: []string{
						"Action: " + action,
						fmt.Sprintf("Quantity: %d shares", decision.Quantity),
						"Confidence: " + formatConfidence(decision.Confidence),
					},
					Timestamp: now,
				})
			}
		case gateway.ShapeAnalyst:
			for _, ticker := range tickers {
				signal, ok := result.Signals[ticker]
				if !ok {
					continue
				}
				verdict := strings.ToUpper(signal.Signal)
				messages = append(messages, Message{
					ID:      uuid.NewString(),
					Role:    RoleAgent,
					Agent:   ag,
					Content: fmt.Sprintf("%s: %s - %s", ticker, verdict, signal.Reasoning),
					Points: []string{
						"Signal: " + verdict,
						"Confidence: " + formatConfidence(signal.Confidence),
					},
					Timestamp: now,
				})
			}
		}
	})

	bundle := &ResultBundle{
		Query:       query,
		Responses:   make([]Response, 0, len(messages)),
		GeneratedAt: now,
	}
	for _, msg := range messages {
		bundle.Responses = append(bundle.Responses, Response{
			Agent:   msg.Agent.Name,
			Content: msg.Content,
			Points:  msg.Points,
		})
	}
	return messages, bundle
}

// formatConfidence renders a confidence percentage the way the agents
// report it: whole numbers without a decimal point, absent values as 0.
func formatConfidence(c *float64) string {
	if c == nil {
		return "0%"
	}
	return strconv.FormatFloat(*c, 'f', -1, 64) + "%"
}
