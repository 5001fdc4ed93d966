package core

// AgentName identifies one of the closed set of planning agents. Routing is a
// tagged variant over these, not an open-ended lookup.
type AgentName string

const (
	// AgentLocation selects destination and points of interest.
	AgentLocation AgentName = "location"
	// AgentStay finds accommodation.
	AgentStay AgentName = "stay"
	// AgentRoute optimizes the visiting route.
	AgentRoute AgentName = "route"
	// AgentBudget estimates cost against the traveler's budget.
	AgentBudget AgentName = "budget"
	// TargetComplete is the terminal marker: no further agent should run.
	TargetComplete AgentName = "complete"
)

// Action is the opaque work descriptor a planner decision hands to the
// target agent. The planner fills it; only the target interprets it.
type Action struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Decision is the planner's verdict for one loop iteration. Created fresh
// each iteration, never mutated, immediately consumed.
type Decision struct {
	Target    AgentName `json:"target"`
	Action    Action    `json:"action"`
	Rationale string    `json:"rationale,omitempty"`
}

// Terminal reports whether the decision ends the loop.
func (d Decision) Terminal() bool { return d.Target == TargetComplete }

// Key collapses the routing-relevant part of the decision for stall
// detection; the rationale is deliberately excluded (tracing only, never
// control flow).
func (d Decision) Key() string { return string(d.Target) + "/" + d.Action.Name }

// Decider is the planner contract: a pure function of state. Given identical
// state snapshots it must return identical decisions, and it must never call
// external services or panic on malformed state.
type Decider interface {
	Decide(state *ConversationState) Decision
}
