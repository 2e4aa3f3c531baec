// Package research holds the conversation transcript types and the
// decomposer that turns a batched analysis payload into per-agent,
// per-ticker messages.
package research

import (
	"time"

	"github.com/google/uuid"

	"wallestreet/agent"
)

// Role identifies who a transcript message speaks for.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one entry in the append-only conversation transcript.
// Transcript entries are never mutated after creation.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Agent     *agent.Agent // nil for user messages
	Points    []string     // ordered supporting points, agent messages only
	Timestamp time.Time
}

// NewUserMessage creates a transcript entry for the user's query.
func NewUserMessage(content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
}

// GuidanceText is shown when a submission carries no recognizable tickers.
const GuidanceText = "I can help you analyze stocks! Just mention any stock ticker (e.g., AAPL, MSFT, GOOGL) in your message."

// GuidanceMessage creates the canned no-tickers reply, attributed to the
// system pseudo-agent.
func GuidanceMessage(now time.Time) Message {
	sys := agent.System
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAgent,
		Content:   GuidanceText,
		Agent:     &sys,
		Timestamp: now,
	}
}

// Response is one agent message flattened for export: the transcript
// stripped of IDs, timestamps and roster pointers.
type Response struct {
	Agent   string
	Content string
	Points  []string
}

// ResultBundle is the exportable snapshot of one completed analysis run.
// Exactly one bundle is current at a time; a new run replaces it wholesale.
type ResultBundle struct {
	Query       string
	Responses   []Response
	GeneratedAt time.Time
}
