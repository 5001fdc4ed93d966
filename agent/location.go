package agent

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// LocationAgent selects the trip destination and its points of interest via
// maps.search_places, then enriches the top pick with reviews.get. Missing
// reviews degrade the result to partial rather than failing the step.
type LocationAgent struct {
	BaseAgent
}

// NewLocationAgent constructs a LocationAgent.
func NewLocationAgent(opts ...Option) *LocationAgent {
	a := &LocationAgent{
		BaseAgent: NewBaseAgent(core.AgentLocation, "Selects the destination and recommends points of interest"),
	}
	for _, o := range opts {
		o(&a.BaseAgent)
	}
	return a
}

var _ core.Agent = (*LocationAgent)(nil)

// Execute implements core.Agent.
func (a *LocationAgent) Execute(sc *core.StepContext) core.AgentResult {
	if err := sc.Err(); err != nil {
		return core.FailureResult(err.Error())
	}

	args := map[string]any{
		"query": sc.Param("query", ""),
		"limit": 5,
	}
	if dest := sc.Param("destination", ""); dest != "" {
		args["destination"] = dest
	}

	searchRec := sc.Tools.Invoke(sc, "maps.search_places", args)
	if !searchRec.OK() {
		return core.FailureResult(
			fmt.Sprintf("place search failed: %s", searchRec.Fault.Message),
			searchRec,
		)
	}

	places, ok := searchRec.Result.(core.PlacesResult)
	if !ok || places.Destination == "" || len(places.Places) == 0 {
		return core.FailureResult("place search returned no usable places", searchRec)
	}

	status := core.StepSuccess
	calls := []core.ToolInvocationRecord{searchRec}

	reviewRec := sc.Tools.Invoke(sc, "reviews.get", map[string]any{"place": places.Places[0].Name})
	calls = append(calls, reviewRec)
	if reviewRec.OK() {
		if reviews, ok := reviewRec.Result.(core.ReviewsResult); ok {
			places.Places[0].Reviews = reviews.Reviews
		}
	} else {
		// Usable without reviews, just thinner.
		status = core.StepPartial
		sc.LogWarn("agent.location.reviews_unavailable", "fault", string(reviewRec.Fault.Kind))
	}

	summary := a.phrase(sc,
		"You are a travel location specialist. Rephrase the finding as one friendly sentence.",
		fmt.Sprintf("Picked %s with %d points of interest to visit.", places.Destination, len(places.Places)),
	)

	return core.AgentResult{
		Status: status,
		Fragment: core.Fragment{
			Destination:      places.Destination,
			PointsOfInterest: places.Places,
			Phases:           []core.Phase{core.PhaseLocation},
			Turns:            []core.Turn{core.NewAgentTurn(a.Name(), summary)},
		},
		ToolCalls: calls,
	}
}
