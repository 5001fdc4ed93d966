// Package planner routes each orchestration step to the next specialized
// agent. Decide is a pure function of conversation state: identical snapshots
// yield identical decisions, nothing external is ever called, and malformed
// state degrades to "phase incomplete" instead of panicking.
package planner

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// Planner implements core.Decider with a fixed precedence order over the
// planning phases: location, then stay, then route, then budget. Route work
// depends on location's points of interest and budget work depends on the
// stay's price, which is exactly the order encoded here.
type Planner struct{}

// New constructs a Planner.
func New() *Planner { return &Planner{} }

var _ core.Decider = (*Planner)(nil)

// Decide returns the next target agent and action for the given state, or the
// terminal marker when planning is complete. A conversation whose status is
// already terminal is never re-entered.
func (p *Planner) Decide(state *core.ConversationState) core.Decision {
	if state == nil {
		return core.Decision{
			Target:    core.TargetComplete,
			Rationale: "no conversation state",
		}
	}

	if state.Terminal() {
		return core.Decision{
			Target:    core.TargetComplete,
			Rationale: fmt.Sprintf("conversation already resolved with status %q", state.Status),
		}
	}

	for _, phase := range core.Phases() {
		if p.complete(state, phase) {
			continue
		}
		return p.dispatch(state, phase)
	}

	return core.Decision{
		Target:    core.TargetComplete,
		Rationale: "all planning phases complete",
	}
}

// complete treats a phase as done when an agent marked it so, or when the
// plan already carries the phase's data (pre-seeded conversations). Anything
// else, including malformed or half-populated fields, counts as incomplete,
// the safe default.
func (p *Planner) complete(state *core.ConversationState, phase core.Phase) bool {
	return state.HasPhase(phase) || state.Plan.Evidence(phase)
}

func (p *Planner) dispatch(state *core.ConversationState, phase core.Phase) core.Decision {
	params := map[string]any{
		"query": state.LastUserMessage(),
	}
	if state.Plan.Destination != "" {
		params["destination"] = state.Plan.Destination
	}

	switch phase {
	case core.PhaseLocation:
		return core.Decision{
			Target:    core.AgentLocation,
			Action:    core.Action{Name: "get_recommendations", Params: params},
			Rationale: "destination or points of interest missing",
		}
	case core.PhaseStay:
		return core.Decision{
			Target:    core.AgentStay,
			Action:    core.Action{Name: "find_accommodations", Params: params},
			Rationale: "accommodation missing",
		}
	case core.PhaseRoute:
		return core.Decision{
			Target:    core.AgentRoute,
			Action:    core.Action{Name: "optimize_itinerary", Params: params},
			Rationale: "route not optimized",
		}
	default:
		return core.Decision{
			Target:    core.AgentBudget,
			Action:    core.Action{Name: "check_budget", Params: params},
			Rationale: "budget not estimated",
		}
	}
}
