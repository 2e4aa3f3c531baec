// Package agent holds the static roster of research agents whose output
// populates the conversation transcript.
package agent

// Agent is one named reasoning participant on the research team: either a
// per-instrument analyst or the single portfolio manager that synthesizes
// the analyst recommendations.
type Agent struct {
	ID        string
	Name      string
	AvatarRef string
	Thinking  string // shown while a request is in flight
	IsManager bool
}

// System is the pseudo-agent used for guidance messages that do not come
// from the analysis backend.
var System = Agent{
	ID:        "system",
	Name:      "System",
	AvatarRef: "wall-e",
}

// Roster is the fixed set of agents the backend may speak as. Payload
// entries from agents not on the roster are dropped by the decomposer.
type Roster struct {
	agents []Agent
	byName map[string]*Agent
}

// DefaultRoster returns the research team roster. Agent names must match
// the keys the analysis backend uses in its reply payload.
func DefaultRoster() *Roster {
	return NewRoster([]Agent{
		{
			ID:        "warren-buffett",
			Name:      "Warren Buffett",
			AvatarRef: "warren-pixar",
			Thinking:  "Analyzing financial statements and cash flows...",
		},
		{
			ID:        "cathie-wood",
			Name:      "Cathie Wood",
			AvatarRef: "cathie-pixar",
			Thinking:  "Evaluating technological disruption potential...",
		},
		{
			ID:        "ben-graham",
			Name:      "Ben Graham",
			AvatarRef: "ben-pixar",
			Thinking:  "Calculating margin of safety...",
		},
		{
			ID:        "bill-ackman",
			Name:      "Bill Ackman",
			AvatarRef: "bill-pixar",
			Thinking:  "Assessing strategic value creation opportunities...",
		},
		{
			ID:        "portfolio-manager",
			Name:      "Portfolio Manager",
			AvatarRef: "wall-e",
			Thinking:  "Synthesizing analyst recommendations...",
			IsManager: true,
		},
	})
}

// NewRoster builds a roster with a name lookup index.
func NewRoster(agents []Agent) *Roster {
	r := &Roster{
		agents: agents,
		byName: make(map[string]*Agent, len(agents)),
	}
	for i := range r.agents {
		r.byName[r.agents[i].Name] = &r.agents[i]
	}
	return r
}

// ByName looks up an agent by the name the backend keys its payload with.
func (r *Roster) ByName(name string) (*Agent, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// All returns the roster in display order.
func (r *Roster) All() []Agent {
	return r.agents
}

// Len returns the number of agents on the roster.
func (r *Roster) Len() int {
	return len(r.agents)
}
