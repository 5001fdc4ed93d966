package agent

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/trace"
)

// stubInvoker serves canned results or faults per tool name and records the
// call order.
type stubInvoker struct {
	results map[string]any
	faults  map[string]*core.ToolFault
	calls   []string
}

var _ core.Invoker = (*stubInvoker)(nil)

func (s *stubInvoker) Invoke(sc *core.StepContext, name string, args map[string]any) core.ToolInvocationRecord {
	s.calls = append(s.calls, name)
	rec := core.ToolInvocationRecord{Tool: name, Args: args}
	if f, ok := s.faults[name]; ok {
		rec.Fault = f
		return rec
	}
	rec.Result = s.results[name]
	return rec
}

func (s *stubInvoker) ToolNames() []string {
	names := make([]string, 0, len(s.results))
	for name := range s.results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newStepContext(t *testing.T, state *core.ConversationState, action core.Action, tools core.Invoker) *core.StepContext {
	t.Helper()
	tr := trace.New("req-test", "orchestrate")
	return core.NewStepContext(context.Background(), state, action, tr, tr.Root(), tools, logging.NoOpLogger{})
}

func placesFixture() core.PlacesResult {
	return core.PlacesResult{
		Destination: "Bangalore",
		Places: []core.POI{
			{Name: "Bangalore Palace", Rating: 4.2},
			{Name: "Cubbon Park", Rating: 4.5},
			{Name: "Lalbagh Botanical Garden", Rating: 4.5},
		},
	}
}

func TestLocationAgent_Success(t *testing.T) {
	tools := &stubInvoker{results: map[string]any{
		"maps.search_places": placesFixture(),
		"reviews.get": core.ReviewsResult{
			Place:   "Bangalore Palace",
			Reviews: []core.Review{{Author: "HistoryBuff88", Text: "great", Rating: 5}},
		},
	}}

	state := core.NewConversationState("conv-1")
	sc := newStepContext(t, state, core.Action{
		Name:   "get_recommendations",
		Params: map[string]any{"query": "weekend in Bangalore"},
	}, tools)

	result := NewLocationAgent().Execute(sc)

	require.Equal(t, core.StepSuccess, result.Status)
	assert.Equal(t, "Bangalore", result.Fragment.Destination)
	require.Len(t, result.Fragment.PointsOfInterest, 3)
	assert.Equal(t, []core.Phase{core.PhaseLocation}, result.Fragment.Phases)
	require.Len(t, result.Fragment.Turns, 1)
	assert.Equal(t, core.AgentLocation, result.Fragment.Turns[0].Agent)

	// Reviews end up attached to the top place.
	assert.NotEmpty(t, result.Fragment.PointsOfInterest[0].Reviews)
	assert.Equal(t, []string{"maps.search_places", "reviews.get"}, tools.calls)
}

func TestLocationAgent_PartialWhenReviewsUnavailable(t *testing.T) {
	tools := &stubInvoker{
		results: map[string]any{"maps.search_places": placesFixture()},
		faults: map[string]*core.ToolFault{
			"reviews.get": core.NewToolFault("reviews.get", core.FaultUpstreamUnavailable, "review service down"),
		},
	}

	sc := newStepContext(t, core.NewConversationState("conv-1"), core.Action{Name: "get_recommendations"}, tools)
	result := NewLocationAgent().Execute(sc)

	require.Equal(t, core.StepPartial, result.Status)
	// The destination and places still land; only the enrichment is missing.
	assert.Equal(t, "Bangalore", result.Fragment.Destination)
	assert.Empty(t, result.Fragment.PointsOfInterest[0].Reviews)
	assert.Equal(t, []core.Phase{core.PhaseLocation}, result.Fragment.Phases)
}

func TestLocationAgent_FailureWhenSearchFails(t *testing.T) {
	tools := &stubInvoker{
		faults: map[string]*core.ToolFault{
			"maps.search_places": core.NewToolFault("maps.search_places", core.FaultTimeout, "deadline exceeded"),
		},
	}

	sc := newStepContext(t, core.NewConversationState("conv-1"), core.Action{Name: "get_recommendations"}, tools)
	result := NewLocationAgent().Execute(sc)

	require.Equal(t, core.StepFailure, result.Status)
	assert.True(t, result.Fragment.Empty())
	assert.Contains(t, result.Reason, "deadline exceeded")
}

func TestStayAgent_PicksTopHotel(t *testing.T) {
	tools := &stubInvoker{results: map[string]any{
		"hotels.search": core.HotelsResult{
			Destination: "Bangalore",
			Hotels: []core.HotelOption{
				{Name: "The Oberoi Bengaluru", Rating: 4.8, PricePerNight: 18000, Currency: "INR"},
				{Name: "Taj West End", Rating: 4.7, PricePerNight: 15000, Currency: "INR"},
			},
		},
	}}

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{Destination: "Bangalore"})
	sc := newStepContext(t, state, core.Action{Name: "find_accommodations"}, tools)

	result := NewStayAgent().Execute(sc)

	require.Equal(t, core.StepSuccess, result.Status)
	require.NotNil(t, result.Fragment.Accommodation)
	assert.Equal(t, "The Oberoi Bengaluru", result.Fragment.Accommodation.Name)
	assert.Len(t, result.Fragment.Hotels, 2)
	assert.Equal(t, []core.Phase{core.PhaseStay}, result.Fragment.Phases)
}

func TestStayAgent_FailureWithoutDestination(t *testing.T) {
	tools := &stubInvoker{}
	sc := newStepContext(t, core.NewConversationState("conv-1"), core.Action{Name: "find_accommodations"}, tools)

	result := NewStayAgent().Execute(sc)

	require.Equal(t, core.StepFailure, result.Status)
	assert.Empty(t, tools.calls, "no tool call without a destination")
}

func TestStayAgent_FailureWhenNoHotels(t *testing.T) {
	tools := &stubInvoker{results: map[string]any{
		"hotels.search": core.HotelsResult{Destination: "Bangalore"},
	}}

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{Destination: "Bangalore"})
	sc := newStepContext(t, state, core.Action{Name: "find_accommodations"}, tools)

	result := NewStayAgent().Execute(sc)
	assert.Equal(t, core.StepFailure, result.Status)
}

func TestRouteAgent_GreedyOrdering(t *testing.T) {
	minute := time.Minute
	tools := &stubInvoker{results: map[string]any{
		"maps.distance_matrix": core.DistanceMatrixResult{
			Locations: []string{"A", "B", "C"},
			DistancesKM: [][]float64{
				{0, 5, 2},
				{5, 0, 3},
				{2, 3, 0},
			},
			Durations: [][]time.Duration{
				{0, 50 * minute, 20 * minute},
				{50 * minute, 0, 30 * minute},
				{20 * minute, 30 * minute, 0},
			},
		},
	}}

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{PointsOfInterest: []core.POI{{Name: "A"}, {Name: "B"}, {Name: "C"}}})
	sc := newStepContext(t, state, core.Action{Name: "optimize_itinerary"}, tools)

	result := NewRouteAgent().Execute(sc)

	require.Equal(t, core.StepSuccess, result.Status)
	route := result.Fragment.Route
	require.NotNil(t, route)
	// Nearest neighbor from A: C (2 km) before B (3 km).
	assert.Equal(t, []string{"A", "C", "B"}, route.Order)
	assert.Equal(t, 5.0, route.TotalDistanceKM)
	assert.Equal(t, 50*minute, route.TotalDuration)
	require.Len(t, route.Legs, 2)
	assert.Equal(t, "C", route.Legs[0].To)
}

func TestRouteAgent_PartialWithFewStops(t *testing.T) {
	tools := &stubInvoker{}
	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{PointsOfInterest: []core.POI{{Name: "A"}}})
	sc := newStepContext(t, state, core.Action{Name: "optimize_itinerary"}, tools)

	result := NewRouteAgent().Execute(sc)

	require.Equal(t, core.StepPartial, result.Status)
	assert.Nil(t, result.Fragment.Route)
	// The phase is still marked so planning moves on.
	assert.Equal(t, []core.Phase{core.PhaseRoute}, result.Fragment.Phases)
	assert.Empty(t, tools.calls)
}

func TestRouteAgent_PartialOnMatrixTimeout(t *testing.T) {
	tools := &stubInvoker{
		faults: map[string]*core.ToolFault{
			"maps.distance_matrix": core.NewToolFault("maps.distance_matrix", core.FaultTimeout, "deadline exceeded"),
		},
	}

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{PointsOfInterest: []core.POI{{Name: "A"}, {Name: "B"}}})
	sc := newStepContext(t, state, core.Action{Name: "optimize_itinerary"}, tools)

	result := NewRouteAgent().Execute(sc)

	require.Equal(t, core.StepPartial, result.Status)
	assert.Nil(t, result.Fragment.Route)
	assert.Equal(t, []core.Phase{core.PhaseRoute}, result.Fragment.Phases)
}

func TestRouteAgent_FailsOnRaggedMatrix(t *testing.T) {
	// A shadowing capability may return locations without matching rows.
	tools := &stubInvoker{results: map[string]any{
		"maps.distance_matrix": core.DistanceMatrixResult{
			Locations:   []string{"A", "B", "C"},
			DistancesKM: [][]float64{{0, 5, 2}},
			Durations:   [][]time.Duration{},
		},
	}}

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{PointsOfInterest: []core.POI{{Name: "A"}, {Name: "B"}, {Name: "C"}}})
	sc := newStepContext(t, state, core.Action{Name: "optimize_itinerary"}, tools)

	var result core.AgentResult
	require.NotPanics(t, func() { result = NewRouteAgent().Execute(sc) })

	require.Equal(t, core.StepFailure, result.Status)
	assert.Contains(t, result.Reason, "malformed")
	assert.Nil(t, result.Fragment.Route)
}

func TestBudgetAgent_Success(t *testing.T) {
	tools := &stubInvoker{results: map[string]any{
		"budget.estimate": core.BudgetEstimate{Total: 60000, Currency: "INR", Status: core.BudgetOnTrack},
	}}

	start := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{
		Dates:            &core.DateRange{Start: start, End: start.AddDate(0, 0, 2)},
		PointsOfInterest: []core.POI{{Name: "A"}, {Name: "B"}},
		Accommodation:    &core.HotelOption{Name: "Taj West End", PricePerNight: 15000, Currency: "INR"},
	})
	sc := newStepContext(t, state, core.Action{Name: "check_budget"}, tools)

	result := NewBudgetAgent().Execute(sc)

	require.Equal(t, core.StepSuccess, result.Status)
	require.NotNil(t, result.Fragment.Budget)
	assert.Equal(t, 60000.0, result.Fragment.Budget.Total)
	assert.Equal(t, []core.Phase{core.PhaseBudget}, result.Fragment.Phases)
}

func TestBudgetAgent_PartialWhenEstimatorDown(t *testing.T) {
	tools := &stubInvoker{
		faults: map[string]*core.ToolFault{
			"budget.estimate": core.NewToolFault("budget.estimate", core.FaultUpstreamUnavailable, "estimator down"),
		},
	}

	sc := newStepContext(t, core.NewConversationState("conv-1"), core.Action{Name: "check_budget"}, tools)
	result := NewBudgetAgent().Execute(sc)

	require.Equal(t, core.StepPartial, result.Status)
	assert.Nil(t, result.Fragment.Budget)
	assert.Equal(t, []core.Phase{core.PhaseBudget}, result.Fragment.Phases)
}

func TestAgents_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := trace.New("req-test", "orchestrate")
	sc := core.NewStepContext(ctx, core.NewConversationState("conv-1"), core.Action{}, tr, tr.Root(), &stubInvoker{}, logging.NoOpLogger{})

	for _, a := range []core.Agent{NewLocationAgent(), NewStayAgent(), NewRouteAgent(), NewBudgetAgent()} {
		result := a.Execute(sc)
		assert.Equal(t, core.StepFailure, result.Status, "agent %s", a.Name())
	}
}
