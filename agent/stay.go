package agent

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// StayAgent finds accommodation for the planned destination via
// hotels.search and records the best-rated option on the plan.
type StayAgent struct {
	BaseAgent
}

// NewStayAgent constructs a StayAgent.
func NewStayAgent(opts ...Option) *StayAgent {
	a := &StayAgent{
		BaseAgent: NewBaseAgent(core.AgentStay, "Finds and ranks accommodation options"),
	}
	for _, o := range opts {
		o(&a.BaseAgent)
	}
	return a
}

var _ core.Agent = (*StayAgent)(nil)

// Execute implements core.Agent.
func (a *StayAgent) Execute(sc *core.StepContext) core.AgentResult {
	if err := sc.Err(); err != nil {
		return core.FailureResult(err.Error())
	}

	destination := sc.Param("destination", sc.Conversation.Plan.Destination)
	if destination == "" {
		return core.FailureResult("no destination to search accommodations for")
	}

	rec := sc.Tools.Invoke(sc, "hotels.search", map[string]any{
		"destination": destination,
		"min_rating":  3.0,
	})
	if !rec.OK() {
		return core.FailureResult(
			fmt.Sprintf("accommodation search failed: %s", rec.Fault.Message),
			rec,
		)
	}

	hotels, ok := rec.Result.(core.HotelsResult)
	if !ok || len(hotels.Hotels) == 0 {
		return core.FailureResult(fmt.Sprintf("no accommodations found in %s", destination), rec)
	}

	// hotels.search returns options sorted best-first.
	top := hotels.Hotels[0]

	summary := a.phrase(sc,
		"You are an accommodation specialist. Rephrase the finding as one friendly sentence.",
		fmt.Sprintf("Booked-ready: %s (%.1f stars) at %.0f %s per night in %s.",
			top.Name, top.Rating, top.PricePerNight, top.Currency, destination),
	)

	return core.AgentResult{
		Status: core.StepSuccess,
		Fragment: core.Fragment{
			Accommodation: &top,
			Hotels:        hotels.Hotels,
			Phases:        []core.Phase{core.PhaseStay},
			Turns:         []core.Turn{core.NewAgentTurn(a.Name(), summary)},
		},
		ToolCalls: []core.ToolInvocationRecord{rec},
	}
}
