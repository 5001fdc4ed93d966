package trace

import (
	"sync"

	"github.com/hupe1980/tripmesh/logging"
)

// Sink receives completed (or force-closed) traces. Implementations must
// tolerate concurrent Export calls from independent requests.
type Sink interface {
	Export(t *Trace)
}

// LoggerSink writes a one-line summary per span to a logging.Logger. It is
// the default sink for local development.
type LoggerSink struct {
	logger logging.Logger
}

// NewLoggerSink constructs a LoggerSink; a nil logger falls back to NoOpLogger.
func NewLoggerSink(logger logging.Logger) *LoggerSink {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &LoggerSink{logger: logger}
}

// Export implements Sink.
func (s *LoggerSink) Export(t *Trace) {
	if t.Malformed() {
		s.logger.Warn("trace.export.malformed", "trace_id", t.ID, "spans", len(t.Spans()))
	}
	for _, sp := range t.Spans() {
		s.logger.Info("trace.span",
			"trace_id", t.ID,
			"span_id", sp.ID,
			"parent_id", sp.ParentID,
			"name", sp.Name,
			"status", string(sp.Status()),
			"duration_ms", sp.Duration().Milliseconds(),
		)
	}
}

// MultiSink fans a trace out to several sinks in order.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink constructs a MultiSink over the given sinks (nils skipped).
func NewMultiSink(sinks ...Sink) *MultiSink {
	ms := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			ms.sinks = append(ms.sinks, s)
		}
	}
	return ms
}

// Export implements Sink.
func (m *MultiSink) Export(t *Trace) {
	for _, s := range m.sinks {
		s.Export(t)
	}
}

// MemorySink retains exported traces in memory. Intended for tests.
type MemorySink struct {
	mu     sync.Mutex
	traces []*Trace
}

// NewMemorySink constructs an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Export implements Sink.
func (m *MemorySink) Export(t *Trace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces = append(m.traces, t)
}

// Traces returns a snapshot of everything exported so far.
func (m *MemorySink) Traces() []*Trace {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Trace, len(m.traces))
	copy(out, m.traces)
	return out
}
