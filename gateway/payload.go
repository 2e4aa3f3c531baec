package gateway

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Signal is one analyst's verdict for a single ticker.
type Signal struct {
	Signal     string   `json:"signal"`
	Reasoning  string   `json:"reasoning"`
	Confidence *float64 `json:"confidence,omitempty"` // 0-100, nil when the agent reported none
}

// Decision is the portfolio manager's trading decision for a single ticker.
type Decision struct {
	Action     string   `json:"action"`
	Reasoning  string   `json:"reasoning"`
	Quantity   int      `json:"quantity"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ResultShape discriminates the two record shapes an agent may reply with.
type ResultShape int

const (
	// ShapeUnknown marks records matching neither shape; they are dropped
	// downstream rather than guessed at.
	ShapeUnknown ResultShape = iota
	ShapeAnalyst
	ShapeManager
)

// AgentResult is one agent's slice of the batched reply: either an analyst
// record (signals keyed by ticker) or the portfolio manager record
// (decisions keyed by ticker). The two shapes are mutually exclusive by
// construction; a record carrying decisions is always the manager's.
type AgentResult struct {
	Shape     ResultShape
	Signals   map[string]Signal
	Decisions map[string]Decision
}

func (r *AgentResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		Signals   map[string]Signal   `json:"signals"`
		Decisions map[string]Decision `json:"decisions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch {
	case probe.Decisions != nil:
		r.Shape = ShapeManager
		r.Decisions = probe.Decisions
	case probe.Signals != nil:
		r.Shape = ShapeAnalyst
		r.Signals = probe.Signals
	default:
		r.Shape = ShapeUnknown
	}
	return nil
}

// AnalysisPayload is the full batched reply, keyed by agent name. The
// backend's key order is authoritative for message ordering, so decoding
// preserves it instead of loading into a plain Go map.
type AnalysisPayload struct {
	results *orderedmap.OrderedMap[string, AgentResult]
}

func (p *AnalysisPayload) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, AgentResult]()
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}
	p.results = om
	return nil
}

// Len returns the number of agent entries in the payload.
func (p *AnalysisPayload) Len() int {
	if p == nil || p.results == nil {
		return 0
	}
	return p.results.Len()
}

// Each visits every (agent name, result) pair in backend order.
func (p *AnalysisPayload) Each(fn func(agentName string, result AgentResult)) {
	if p == nil || p.results == nil {
		return
	}
	for pair := p.results.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
