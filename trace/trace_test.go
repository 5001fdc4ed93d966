package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OpensRoot(t *testing.T) {
	tr := New("req-1", "orchestrate")

	assert.Equal(t, "req-1", tr.ID)
	root := tr.Root()
	require.NotNil(t, root)
	assert.Equal(t, "orchestrate", root.Name)
	assert.Empty(t, root.ParentID)
	assert.False(t, root.Done())
}

func TestNew_GeneratesID(t *testing.T) {
	tr := New("", "orchestrate")
	assert.NotEmpty(t, tr.ID)
}

func TestStartSpan_Nesting(t *testing.T) {
	tr := New("req-1", "orchestrate")
	root := tr.Root()

	agent := tr.StartSpan("agent.location", root)
	tool := tr.StartSpan("tool.maps.search_places", agent)
	assert.Equal(t, root.ID, agent.ParentID)
	assert.Equal(t, agent.ID, tool.ParentID)

	// Nil parent attaches to the root.
	orphan := tr.StartSpan("loose", nil)
	assert.Equal(t, root.ID, orphan.ParentID)

	children := tr.Children(root)
	require.Len(t, children, 2)
	assert.Equal(t, agent.ID, children[0].ID)
	assert.Equal(t, orphan.ID, children[1].ID)
}

func TestSpan_EndOnce(t *testing.T) {
	tr := New("req-1", "orchestrate")
	span := tr.StartSpan("agent.stay", nil)

	span.End(StatusError)
	first := span.Ended()

	// Later End calls never clobber the first status.
	span.End(StatusSuccess)
	assert.Equal(t, StatusError, span.Status())
	assert.Equal(t, first, span.Ended())
	assert.True(t, span.Done())
	assert.GreaterOrEqual(t, span.Duration().Nanoseconds(), int64(0))
}

func TestSpan_AddEventAfterEndIgnored(t *testing.T) {
	tr := New("req-1", "orchestrate")
	span := tr.StartSpan("agent.route", nil)

	span.AddEvent("action", "optimize_itinerary")
	span.End(StatusSuccess)
	span.AddEvent("late", "ignored")

	events := span.Events()
	assert.Contains(t, events, "action")
	assert.NotContains(t, events, "late")
}

func TestTrace_Finish_FlagsLeakedSpans(t *testing.T) {
	tr := New("req-1", "orchestrate")
	leaked := tr.StartSpan("agent.budget", nil)
	tr.Root().End(StatusSuccess)

	tr.Finish()

	assert.True(t, tr.Malformed())
	assert.True(t, leaked.Done())
	assert.Equal(t, StatusError, leaked.Status())
	assert.Contains(t, leaked.Events(), "trace.leaked_span")
	assert.False(t, tr.Ended().IsZero())
}

func TestTrace_Finish_CleanTree(t *testing.T) {
	tr := New("req-1", "orchestrate")
	span := tr.StartSpan("agent.location", nil)
	span.End(StatusSuccess)
	tr.Root().End(StatusSuccess)

	tr.Finish()
	assert.False(t, tr.Malformed())
}

func TestTrace_CloseOpen(t *testing.T) {
	tr := New("req-1", "orchestrate")
	a := tr.StartSpan("agent.location", nil)
	b := tr.StartSpan("tool.maps.search_places", a)
	a.End(StatusSuccess)

	tr.CloseOpen(StatusCancelled)

	// Already-ended spans keep their status; open ones become cancelled.
	assert.Equal(t, StatusSuccess, a.Status())
	assert.Equal(t, StatusCancelled, b.Status())
	assert.Equal(t, StatusCancelled, tr.Root().Status())

	tr.Finish()
	assert.False(t, tr.Malformed())
}

func TestMemorySink_ConcurrentExport(t *testing.T) {
	sink := NewMemorySink()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr := New("", "orchestrate")
			tr.Root().End(StatusSuccess)
			tr.Finish()
			sink.Export(tr)
		}()
	}
	wg.Wait()

	assert.Len(t, sink.Traces(), 10)
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := NewMemorySink(), NewMemorySink()
	ms := NewMultiSink(a, nil, b)

	tr := New("req-1", "orchestrate")
	tr.Root().End(StatusSuccess)
	ms.Export(tr)

	assert.Len(t, a.Traces(), 1)
	assert.Len(t, b.Traces(), 1)
}
