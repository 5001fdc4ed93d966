package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/internal/util"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/trace"
)

// Options holds configuration overrides passed to NewRuntime.
type Options struct {
	// ToolTimeout bounds each capability call. Zero disables the per-call
	// deadline (the ambient request deadline still applies).
	ToolTimeout time.Duration
	// Logger receives invocation logs. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Runtime maps tool names to callable capabilities and executes them by name.
// The registry is populated at startup via Register and is read-mostly
// afterwards; lookups are safe across all concurrent conversations.
//
// Invoke wraps every execution in a trace span and converts any fault
// (returned error, panic, exceeded deadline) into a typed core.ToolFault.
// Raw faults never propagate past this boundary.
type Runtime struct {
	mu          sync.RWMutex
	tools       map[string]Tool
	toolTimeout time.Duration
	logger      logging.Logger
}

// NewRuntime constructs a Runtime with optional overrides.
func NewRuntime(optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runtime{
		tools:       make(map[string]Tool),
		toolTimeout: opts.ToolTimeout,
		logger:      opts.Logger,
	}
}

// Register adds a tool to the registry. Re-registering a name overwrites the
// previous capability, which is how tests install fakes.
func (r *Runtime) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// ToolNames returns the registered tool names in sorted order.
func (r *Runtime) ToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registered tool and whether it exists.
func (r *Runtime) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Invoke implements core.Invoker. It opens a child span named for the tool
// under the step's span, calls the capability, and returns a record carrying
// either the result or a typed fault. An unregistered name yields an
// unknown-tool fault without invoking anything.
func (r *Runtime) Invoke(sc *core.StepContext, name string, args map[string]any) core.ToolInvocationRecord {
	start := time.Now()
	rec := core.ToolInvocationRecord{Tool: name, Args: args}

	span := sc.Trace.StartSpan("tool."+name, sc.Span)
	span.AddEvent("tool.args", args)

	t, ok := r.Lookup(name)
	if !ok {
		rec.Fault = core.NewToolFault(name, core.FaultUnknownTool, "no capability registered under this name")
		rec.Duration = time.Since(start)
		span.AddEvent("tool.fault", rec.Fault)
		span.End(trace.StatusError)
		r.logger.Warn("tool.invoke.unknown", "tool", name)
		return rec
	}

	ctx := sc.Context
	cancel := context.CancelFunc(func() {})
	if r.toolTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.toolTimeout)
	}
	defer cancel()

	callID := core.NewID()
	toolCtx := core.NewToolContext(ctx, sc.Conversation.ID, callID, name, r.logger)

	result, err := r.call(ctx, t, toolCtx, args)
	rec.Duration = time.Since(start)

	if err != nil {
		rec.Fault = classify(name, err)
		span.AddEvent("tool.fault", rec.Fault)
		span.End(trace.StatusError)
		r.logger.Warn("tool.invoke.fault", "tool", name, "kind", string(rec.Fault.Kind), "error", rec.Fault.Message)
		return rec
	}

	rec.Result = result
	span.AddEvent("tool.result", result)
	span.End(trace.StatusSuccess)
	r.logger.Info("tool.invoke.success", "tool", name, "call_id", callID, "duration_ms", rec.Duration.Milliseconds())
	return rec
}

// call runs the capability on its own goroutine so an overrunning tool cannot
// hold the loop past its deadline, and converts panics into errors.
func (r *Runtime) call(ctx context.Context, t Tool, toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
	type outcome struct {
		result any
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: fmt.Errorf("capability panic: %v", rec)}
			}
		}()
		res, callErr := t.Call(toolCtx, args)
		done <- outcome{result: res, err: callErr}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.result, out.err
	}
}

// classify converts a raw capability error into the typed fault taxonomy.
func classify(tool string, err error) *core.ToolFault {
	var vErr *util.ValidationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return core.NewToolFault(tool, core.FaultTimeout, err.Error())
	case errors.Is(err, context.Canceled):
		return core.NewToolFault(tool, core.FaultTimeout, err.Error())
	case errors.As(err, &vErr):
		return core.NewToolFault(tool, core.FaultInvalidArguments, vErr.Error())
	default:
		return core.NewToolFault(tool, core.FaultUpstreamUnavailable, err.Error())
	}
}
