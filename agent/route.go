package agent

import (
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/core"
)

// RouteAgent orders the planned points of interest into a visiting route
// using maps.distance_matrix and a greedy nearest-neighbor pass. When the
// matrix is unavailable (timeout, upstream outage) the agent reports partial
// and marks the phase done with the route left absent; an itinerary without
// leg distances is still a usable plan.
type RouteAgent struct {
	BaseAgent
}

// NewRouteAgent constructs a RouteAgent.
func NewRouteAgent(opts ...Option) *RouteAgent {
	a := &RouteAgent{
		BaseAgent: NewBaseAgent(core.AgentRoute, "Optimizes the visiting route across points of interest"),
	}
	for _, o := range opts {
		o(&a.BaseAgent)
	}
	return a
}

var _ core.Agent = (*RouteAgent)(nil)

// Execute implements core.Agent.
func (a *RouteAgent) Execute(sc *core.StepContext) core.AgentResult {
	if err := sc.Err(); err != nil {
		return core.FailureResult(err.Error())
	}

	pois := sc.Conversation.Plan.PointsOfInterest
	if len(pois) < 2 {
		return core.AgentResult{
			Status: core.StepPartial,
			Reason: "not enough points of interest to route",
			Fragment: core.Fragment{
				Phases: []core.Phase{core.PhaseRoute},
				Turns:  []core.Turn{core.NewAgentTurn(a.Name(), "Too few stops to optimize a route; visit them in any order.")},
			},
		}
	}

	names := make([]any, len(pois))
	for i, p := range pois {
		names[i] = p.Name
	}

	rec := sc.Tools.Invoke(sc, "maps.distance_matrix", map[string]any{"locations": names})
	if !rec.OK() {
		return core.AgentResult{
			Status: core.StepPartial,
			Reason: fmt.Sprintf("distance matrix unavailable: %s", rec.Fault.Message),
			Fragment: core.Fragment{
				Phases: []core.Phase{core.PhaseRoute},
				Turns:  []core.Turn{core.NewAgentTurn(a.Name(), "Route optimization is unavailable right now; the stops are kept in recommendation order.")},
			},
			ToolCalls: []core.ToolInvocationRecord{rec},
		}
	}

	matrix, ok := rec.Result.(core.DistanceMatrixResult)
	if !ok || !squareMatrix(matrix, len(pois)) {
		return core.FailureResult("distance matrix result malformed", rec)
	}

	route := greedyRoute(matrix)

	summary := a.phrase(sc,
		"You are a route planning specialist. Rephrase the finding as one friendly sentence.",
		fmt.Sprintf("Optimized a %d-stop route covering %.1f km in about %s.",
			len(route.Order), route.TotalDistanceKM, route.TotalDuration.Round(time.Minute)),
	)

	return core.AgentResult{
		Status: core.StepSuccess,
		Fragment: core.Fragment{
			Route:  &route,
			Phases: []core.Phase{core.PhaseRoute},
			Turns:  []core.Turn{core.NewAgentTurn(a.Name(), summary)},
		},
		ToolCalls: []core.ToolInvocationRecord{rec},
	}
}

// squareMatrix reports whether m is a full n-by-n matrix over n locations.
func squareMatrix(m core.DistanceMatrixResult, n int) bool {
	if len(m.Locations) != n || len(m.DistancesKM) != n || len(m.Durations) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if len(m.DistancesKM[i]) != n || len(m.Durations[i]) != n {
			return false
		}
	}
	return true
}

// greedyRoute orders locations nearest-neighbor first starting from index 0.
// Good enough for a handful of city stops; the matrix is symmetric.
func greedyRoute(m core.DistanceMatrixResult) core.RoutePlan {
	n := len(m.Locations)
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[0] = true
	order = append(order, 0)

	for len(order) < n {
		next, best := -1, 0.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := m.DistancesKM[current][j]
			if next == -1 || d < best {
				next, best = j, d
			}
		}
		visited[next] = true
		order = append(order, next)
		current = next
	}

	plan := core.RoutePlan{Order: make([]string, n)}
	for i, idx := range order {
		plan.Order[i] = m.Locations[idx]
		if i == 0 {
			continue
		}
		prev := order[i-1]
		leg := core.RouteLeg{
			From:       m.Locations[prev],
			To:         m.Locations[idx],
			DistanceKM: m.DistancesKM[prev][idx],
			Duration:   m.Durations[prev][idx],
			Mode:       "walking",
		}
		plan.Legs = append(plan.Legs, leg)
		plan.TotalDistanceKM += leg.DistanceKM
		plan.TotalDuration += leg.Duration
	}
	return plan
}
