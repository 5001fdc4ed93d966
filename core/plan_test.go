package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripPlan_Evidence(t *testing.T) {
	var plan TripPlan
	for _, phase := range Phases() {
		assert.False(t, plan.Evidence(phase), "empty plan should have no evidence for %s", phase)
	}

	plan.Destination = "Bangalore"
	assert.False(t, plan.Evidence(PhaseLocation), "destination alone is not location evidence")

	plan.PointsOfInterest = []POI{{Name: "Cubbon Park"}}
	assert.True(t, plan.Evidence(PhaseLocation))

	plan.Accommodation = &HotelOption{Name: "Taj West End"}
	assert.True(t, plan.Evidence(PhaseStay))

	plan.Route = &RoutePlan{Order: []string{"Cubbon Park"}}
	assert.True(t, plan.Evidence(PhaseRoute))

	plan.Budget = &BudgetEstimate{Total: 50000}
	assert.True(t, plan.Evidence(PhaseBudget))

	assert.False(t, plan.Evidence(Phase("unknown")))
}

func TestTripPlan_Clone_DeepCopy(t *testing.T) {
	plan := TripPlan{
		Destination: "Delhi",
		Dates:       &DateRange{Start: time.Now(), End: time.Now().AddDate(0, 0, 2)},
		PointsOfInterest: []POI{
			{Name: "India Gate", Reviews: []Review{{Text: "lovely"}}},
		},
		Accommodation: &HotelOption{Name: "The Imperial"},
		Hotels:        []HotelOption{{Name: "The Imperial"}},
		Route:         &RoutePlan{Order: []string{"India Gate"}, Legs: []RouteLeg{{From: "a", To: "b"}}},
		Budget:        &BudgetEstimate{Total: 1, Breakdown: map[string]float64{"food": 1}},
	}

	clone := plan.Clone()
	clone.PointsOfInterest[0].Reviews[0].Text = "changed"
	clone.Accommodation.Name = "changed"
	clone.Route.Order[0] = "changed"
	clone.Budget.Breakdown["food"] = 99

	assert.Equal(t, "lovely", plan.PointsOfInterest[0].Reviews[0].Text)
	assert.Equal(t, "The Imperial", plan.Accommodation.Name)
	assert.Equal(t, "India Gate", plan.Route.Order[0])
	assert.Equal(t, 1.0, plan.Budget.Breakdown["food"])
}

func TestDateRange_Nights(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	require.Equal(t, 3, DateRange{Start: start, End: start.AddDate(0, 0, 3)}.Nights())
	// Same-day and inverted ranges floor at one night.
	assert.Equal(t, 1, DateRange{Start: start, End: start}.Nights())
	assert.Equal(t, 1, DateRange{Start: start, End: start.AddDate(0, 0, -2)}.Nights())
}

func TestDecision_KeyAndTerminal(t *testing.T) {
	d := Decision{Target: AgentStay, Action: Action{Name: "find_accommodations"}}
	assert.Equal(t, "stay/find_accommodations", d.Key())
	assert.False(t, d.Terminal())

	// Rationale is excluded from the key.
	d2 := d
	d2.Rationale = "different wording"
	assert.Equal(t, d.Key(), d2.Key())

	assert.True(t, Decision{Target: TargetComplete}.Terminal())
}

func TestToolFault_Error(t *testing.T) {
	fault := NewToolFault("hotels.search", FaultTimeout, "deadline exceeded")
	assert.Contains(t, fault.Error(), "hotels.search")
	assert.Contains(t, fault.Error(), "timeout")

	rec := ToolInvocationRecord{Tool: "hotels.search"}
	assert.True(t, rec.OK())
	rec.Fault = fault
	assert.False(t, rec.OK())
}
