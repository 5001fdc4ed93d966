package tripmesh_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/trace"
)

func quiet(o *tripmesh.Options) {
	o.Logger = logging.NoOpLogger{}
}

func TestPlan_EndToEnd(t *testing.T) {
	sink := trace.NewMemorySink()
	mesh := tripmesh.New(quiet, func(o *tripmesh.Options) {
		o.Sink = sink
	})

	state, err := mesh.Plan(context.Background(), "trip-1", "Plan a weekend trip to Bangalore")
	require.NoError(t, err)

	assert.Equal(t, core.StatusSuccess, state.Status)
	assert.Equal(t, 4, state.Steps)

	plan := state.Plan
	assert.Equal(t, "Bangalore", plan.Destination)
	require.Len(t, plan.PointsOfInterest, 5)
	assert.NotEmpty(t, plan.PointsOfInterest[0].Reviews, "top place is enriched with reviews")

	require.NotNil(t, plan.Accommodation)
	assert.Equal(t, "The Oberoi Bengaluru", plan.Accommodation.Name, "best-rated hotel wins")

	require.NotNil(t, plan.Route)
	assert.Len(t, plan.Route.Order, 5)
	assert.Positive(t, plan.Route.TotalDistanceKM)

	require.NotNil(t, plan.Budget)
	assert.Equal(t, "INR", plan.Budget.Currency)
	assert.Positive(t, plan.Budget.Total)

	// One agent turn per phase on top of the user turn.
	assert.Len(t, state.Turns, 5)

	// The trace is complete and balanced.
	traces := sink.Traces()
	require.Len(t, traces, 1)
	assert.False(t, traces[0].Malformed())
	for _, s := range traces[0].Spans() {
		assert.True(t, s.Done(), "span %s must be closed", s.Name)
	}
}

func TestPlan_ConversationPersists(t *testing.T) {
	mesh := tripmesh.New(quiet)

	first, err := mesh.Plan(context.Background(), "trip-1", "Plan a trip to Mumbai")
	require.NoError(t, err)
	require.Equal(t, core.StatusSuccess, first.Status)
	assert.Equal(t, "Mumbai", first.Plan.Destination)

	// A follow-up on a resolved conversation keeps its outcome.
	second, err := mesh.Plan(context.Background(), "trip-1", "thanks")
	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, second.Status)
	assert.Equal(t, first.Steps, second.Steps)

	require.NoError(t, mesh.DeleteConversation("trip-1"))
}

func TestPlan_IndependentConversations(t *testing.T) {
	mesh := tripmesh.New(quiet)

	blr, err := mesh.Plan(context.Background(), "trip-blr", "weekend in Bangalore")
	require.NoError(t, err)
	del, err := mesh.Plan(context.Background(), "trip-del", "three days in Delhi")
	require.NoError(t, err)

	assert.Equal(t, "Bangalore", blr.Plan.Destination)
	assert.Equal(t, "Delhi", del.Plan.Destination)
}

func TestCard(t *testing.T) {
	mesh := tripmesh.New(quiet)
	card := mesh.Card()

	assert.Equal(t, "tripmesh", card.Name)
	require.Len(t, card.Capabilities, 4)
	assert.Contains(t, card.Tools, "maps.search_places")
	assert.Contains(t, card.Tools, "budget.estimate")
}
