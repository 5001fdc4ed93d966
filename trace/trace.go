// Package trace builds per-request span trees for orchestration observability.
//
// A Trace owns every Span it creates; spans hold a weak reference to their
// parent and never outlive the trace. Parent handles are passed explicitly
// into StartSpan rather than being carried in ambient context, so span
// nesting stays correct across suspension points.
package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SpanStatus represents the terminal status of a span or trace.
type SpanStatus string

const (
	// StatusSuccess marks a fully successful unit of work.
	StatusSuccess SpanStatus = "success"
	// StatusPartial marks a unit of work that produced an incomplete but usable result.
	StatusPartial SpanStatus = "partial"
	// StatusError marks a failed unit of work.
	StatusError SpanStatus = "error"
	// StatusCancelled marks a span force-closed while work was still in flight.
	StatusCancelled SpanStatus = "cancelled"
)

// Span is a single node in the trace tree. All mutation goes through End and
// AddEvent; once ended a span is immutable. Spans are safe for concurrent use.
type Span struct {
	ID       string
	Name     string
	ParentID string

	mu      sync.Mutex
	started time.Time
	ended   time.Time
	status  SpanStatus
	done    bool
	events  map[string]any
}

// Started returns the span start timestamp.
func (s *Span) Started() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Ended returns the span end timestamp (zero while the span is open).
func (s *Span) Ended() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Status returns the status recorded by End, or empty while open.
func (s *Span) Status() SpanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Done reports whether End has been called.
func (s *Span) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Duration returns the elapsed time between start and end, or zero while open.
func (s *Span) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		return 0
	}
	return s.ended.Sub(s.started)
}

// End closes the span with the given status. A span must be ended exactly
// once; subsequent calls are no-ops so that defensive defers on failure paths
// never clobber the first recorded status.
func (s *Span) End(status SpanStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.status = status
	s.ended = time.Now().UTC()
}

// AddEvent attaches a named payload to the span. Re-adding an event name
// overwrites the previous payload.
func (s *Span) AddEvent(name string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	if s.events == nil {
		s.events = map[string]any{}
	}
	s.events[name] = payload
}

// Events returns a defensive copy of the span's event map.
func (s *Span) Events() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.events))
	for k, v := range s.events {
		out[k] = v
	}
	return out
}

// Trace is the per-request span tree. It owns all spans; a span's parent
// reference is the parent's ID only, so destroying the trace releases the
// whole tree at once.
type Trace struct {
	ID string

	mu        sync.Mutex
	root      *Span
	spans     []*Span
	started   time.Time
	ended     time.Time
	malformed bool
}

// New starts a trace for the given request ID and opens its root span. An
// empty requestID gets a generated UUID.
func New(requestID, rootName string) *Trace {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	t := &Trace{ID: requestID, started: time.Now().UTC()}
	t.root = t.newSpan(rootName, "")
	return t
}

// Root returns the root span opened by New.
func (t *Trace) Root() *Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// StartSpan opens a child span under parent. A nil parent attaches the span
// to the root.
func (t *Trace) StartSpan(name string, parent *Span) *Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	parentID := t.root.ID
	if parent != nil {
		parentID = parent.ID
	}
	return t.newSpan(name, parentID)
}

func (t *Trace) newSpan(name, parentID string) *Span {
	s := &Span{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
		started:  time.Now().UTC(),
		events:   map[string]any{},
	}
	t.spans = append(t.spans, s)
	return s
}

// Spans returns a snapshot of all spans in creation order.
func (t *Trace) Spans() []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// Children returns the direct children of the given span in creation order.
func (t *Trace) Children(parent *Span) []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*Span
	for _, s := range t.spans {
		if s.ParentID == parent.ID {
			out = append(out, s)
		}
	}
	return out
}

// CloseOpen force-closes every span that is still open, root included. Used
// on the cancellation path so a timed-out request never exports a trace with
// dangling spans.
func (t *Trace) CloseOpen(status SpanStatus) {
	for _, s := range t.Spans() {
		s.End(status)
	}
}

// Finish seals the trace. Any span still open at this point is an invariant
// violation: the trace is flagged malformed (and the offending spans closed
// with an error status) so the sink receives a diagnosable tree instead of
// silently losing it.
func (t *Trace) Finish() {
	for _, s := range t.Spans() {
		if !s.Done() {
			t.mu.Lock()
			t.malformed = true
			t.mu.Unlock()
			s.AddEvent("trace.leaked_span", s.Name)
			s.End(StatusError)
		}
	}
	t.mu.Lock()
	t.ended = time.Now().UTC()
	t.mu.Unlock()
}

// Malformed reports whether Finish found unterminated spans.
func (t *Trace) Malformed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.malformed
}

// Started returns the trace start timestamp.
func (t *Trace) Started() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// Ended returns the timestamp recorded by Finish.
func (t *Trace) Ended() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ended
}
