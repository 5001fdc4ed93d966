// Package orchestrator drives the trip-planning control loop: it repeatedly
// consults the planner, dispatches the chosen agent, merges the result into
// conversation state and terminates deterministically, while keeping a
// correctly nested trace and containing partial failures from any agent or
// tool.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/trace"
)

// Options holds dependency and configuration overrides passed to New.
type Options struct {
	// MaxSteps bounds the loop so it terminates even under a misbehaving
	// planner.
	MaxSteps int
	// RetryLimit is the number of additional attempts a failing agent gets
	// with the same action before the failure escalates.
	RetryLimit int
	// StallLimit is how many consecutive identical decisions with unchanged
	// state count as a planner stall.
	StallLimit int
	// Timeout is the per-request wall-clock budget. Zero disables it.
	Timeout time.Duration
	// Store persists conversation state between requests.
	Store core.ConversationStore
	// Sink receives the completed trace of every request.
	Sink trace.Sink
	// Logger receives orchestration logs.
	Logger logging.Logger
}

// Orchestrator is the super agent. One Orchestrator serves all conversations;
// each Handle call owns its conversation state exclusively for the request's
// duration, so no cross-conversation locking exists anywhere in the loop.
type Orchestrator struct {
	decider core.Decider
	agents  map[core.AgentName]core.Agent
	tools   core.Invoker

	maxSteps   int
	retryLimit int
	stallLimit int
	timeout    time.Duration

	store  core.ConversationStore
	sink   trace.Sink
	logger logging.Logger
}

// New constructs an Orchestrator over the given planner, agents and tool
// runtime, with optional overrides.
func New(decider core.Decider, agents []core.Agent, tools core.Invoker, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxSteps:   10,
		RetryLimit: 2,
		StallLimit: 3,
		Timeout:    60 * time.Second,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sink == nil {
		opts.Sink = trace.NewLoggerSink(opts.Logger)
	}

	byName := make(map[core.AgentName]core.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}

	return &Orchestrator{
		decider:    decider,
		agents:     byName,
		tools:      tools,
		maxSteps:   opts.MaxSteps,
		retryLimit: opts.RetryLimit,
		stallLimit: opts.StallLimit,
		timeout:    opts.Timeout,
		store:      opts.Store,
		sink:       opts.Sink,
		logger:     opts.Logger,
	}
}

// Card returns the static discovery document for this orchestrator.
func (o *Orchestrator) Card() core.Card {
	card := core.Card{
		Name:        "tripmesh",
		Description: "Multi-agent trip planner coordinating location, stay, route and budget specialists",
		Version:     "1.0",
	}
	for _, phase := range core.Phases() {
		if a, ok := o.agents[core.AgentName(phase)]; ok {
			card.Capabilities = append(card.Capabilities, core.Capability{
				Agent:       a.Name(),
				Phase:       phase,
				Description: a.Description(),
			})
		}
	}
	if o.tools != nil {
		card.Tools = o.tools.ToolNames()
	}
	return card
}

// Handle processes one inbound message for a conversation: it loads or
// initializes state, runs the planning loop to completion (or to a budget),
// exports the trace and persists the state. The returned state is always
// usable; a non-nil *OrchestrationError reports why the loop terminated
// fatally.
func (o *Orchestrator) Handle(ctx context.Context, conversationID, message string) (*core.ConversationState, error) {
	state, err := o.loadState(conversationID)
	if err != nil {
		return nil, &OrchestrationError{Kind: ErrKindStore, ConversationID: conversationID, Message: "failed to load conversation", Err: err}
	}
	if message != "" {
		state.AppendTurn(core.NewUserTurn(message))
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	tr := trace.New(core.NewID(), "orchestrate")
	root := tr.Root()
	root.AddEvent("conversation_id", state.ID)

	final, loopErr := o.runLoop(ctx, tr, state)

	root.AddEvent("final_status", string(state.Status))
	if state.StatusReason != "" {
		root.AddEvent("status_reason", state.StatusReason)
	}
	root.End(final)
	tr.Finish()
	o.sink.Export(tr)

	if o.store != nil {
		if err := o.store.Save(state); err != nil {
			return state, &OrchestrationError{Kind: ErrKindStore, ConversationID: state.ID, Message: "failed to persist conversation", Err: err}
		}
	}

	if loopErr != nil {
		return state, loopErr
	}
	return state, nil
}

// Delete removes a conversation from the store.
func (o *Orchestrator) Delete(conversationID string) error {
	if o.store == nil {
		return nil
	}
	return o.store.Delete(conversationID)
}

func (o *Orchestrator) loadState(conversationID string) (*core.ConversationState, error) {
	if conversationID == "" || o.store == nil {
		return core.NewConversationState(conversationID), nil
	}
	state, err := o.store.Load(conversationID)
	if errors.Is(err, core.ErrNotFound) {
		return core.NewConversationState(conversationID), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// runLoop executes the planning loop against the exclusively-owned state and
// returns the root span status plus the fatal error, if any. Every span it
// opens is closed on every exit path; the timeout path force-closes whatever
// is still open with a cancelled status.
func (o *Orchestrator) runLoop(ctx context.Context, tr *trace.Trace, state *core.ConversationState) (trace.SpanStatus, *OrchestrationError) {
	root := tr.Root()

	lastKey, lastFingerprint := "", ""
	repeats := 0

	for {
		if err := ctx.Err(); err != nil {
			return o.timeoutExit(tr, state)
		}

		decision := o.decider.Decide(state)
		root.AddEvent(fmt.Sprintf("decision.%d", state.Steps), map[string]any{
			"target":    string(decision.Target),
			"action":    decision.Action.Name,
			"rationale": decision.Rationale,
		})

		if decision.Terminal() {
			return o.completeExit(state), nil
		}

		// Stall detection: the same non-terminal decision against an
		// unchanged state means an agent is silently making no progress.
		fingerprint := state.Fingerprint()
		if decision.Key() == lastKey && fingerprint == lastFingerprint {
			repeats++
		} else {
			repeats = 1
			lastKey, lastFingerprint = decision.Key(), fingerprint
		}
		if repeats >= o.stallLimit {
			msg := fmt.Sprintf("planner stall: decision %q repeated %d times with no state change", decision.Key(), repeats)
			state.MarkTerminal(core.StatusError, msg)
			o.logger.Error("orchestrator.stall", "conversation_id", state.ID, "decision", decision.Key())
			return trace.StatusError, &OrchestrationError{Kind: ErrKindPlannerStall, ConversationID: state.ID, Message: msg}
		}

		if state.Steps >= o.maxSteps {
			msg := fmt.Sprintf("step budget of %d exhausted before planning completed", o.maxSteps)
			state.MarkTerminal(core.StatusError, msg)
			return trace.StatusError, &OrchestrationError{Kind: ErrKindStepBudget, ConversationID: state.ID, Message: msg}
		}

		target, ok := o.agents[decision.Target]
		if !ok {
			msg := fmt.Sprintf("planner routed to unregistered agent %q", decision.Target)
			state.MarkTerminal(core.StatusError, msg)
			return trace.StatusError, &OrchestrationError{Kind: ErrKindUnknownTarget, ConversationID: state.ID, Message: msg}
		}

		state.IncrementStep()

		status, oErr := o.dispatch(ctx, tr, state, target, decision)
		if oErr != nil {
			return status, oErr
		}
	}
}

// dispatch runs one agent with the retry policy: up to RetryLimit additional
// attempts with the same action, a fresh span per attempt.
func (o *Orchestrator) dispatch(
	ctx context.Context,
	tr *trace.Trace,
	state *core.ConversationState,
	target core.Agent,
	decision core.Decision,
) (trace.SpanStatus, *OrchestrationError) {
	root := tr.Root()
	var lastReason string

	for attempt := 0; attempt <= o.retryLimit; attempt++ {
		span := tr.StartSpan("agent."+string(target.Name()), root)
		span.AddEvent("action", decision.Action.Name)
		if attempt > 0 {
			span.AddEvent("retry_attempt", attempt)
		}

		sc := core.NewStepContext(ctx, state.Clone(), decision.Action, tr, span, o.tools, o.logger)
		result := target.Execute(sc)

		for i, rec := range result.ToolCalls {
			span.AddEvent(fmt.Sprintf("tool_call.%d", i), rec)
		}

		if err := ctx.Err(); err != nil {
			span.End(trace.StatusCancelled)
			return o.timeoutExit(tr, state)
		}

		switch result.Status {
		case core.StepSuccess, core.StepPartial:
			if !result.Fragment.Empty() {
				state.Merge(result.Fragment)
			}
			if result.Status == core.StepPartial {
				span.AddEvent("agent.partial", result.Reason)
				span.End(trace.StatusPartial)
			} else {
				span.End(trace.StatusSuccess)
			}
			o.logger.Info("orchestrator.step",
				"conversation_id", state.ID,
				"agent", string(target.Name()),
				"status", string(result.Status),
				"step", state.Steps,
			)
			return trace.StatusSuccess, nil
		default:
			lastReason = result.Reason
			span.AddEvent("agent.failure", result.Reason)
			span.End(trace.StatusError)
			o.logger.Warn("orchestrator.step.failure",
				"conversation_id", state.ID,
				"agent", string(target.Name()),
				"attempt", attempt,
				"reason", result.Reason,
			)
		}
	}

	msg := fmt.Sprintf("agent %q failed after %d attempts: %s", target.Name(), o.retryLimit+1, lastReason)
	state.MarkTerminal(core.StatusError, msg)
	root.AddEvent("agent_failure", map[string]any{
		"agent":  string(target.Name()),
		"reason": lastReason,
	})
	return trace.StatusError, &OrchestrationError{Kind: ErrKindAgentFailure, ConversationID: state.ID, Message: msg}
}

// completeExit resolves the final status when the planner signals completion.
func (o *Orchestrator) completeExit(state *core.ConversationState) trace.SpanStatus {
	if state.Terminal() {
		// Re-entered an already resolved conversation; keep its status.
		switch state.Status {
		case core.StatusSuccess:
			return trace.StatusSuccess
		case core.StatusPartial:
			return trace.StatusPartial
		default:
			return trace.StatusError
		}
	}

	full := true
	for _, phase := range core.Phases() {
		if !state.Plan.Evidence(phase) {
			full = false
			break
		}
	}
	if full {
		state.MarkTerminal(core.StatusSuccess, "trip planning complete")
		return trace.StatusSuccess
	}
	state.MarkTerminal(core.StatusPartial, "trip planning complete with gaps")
	return trace.StatusPartial
}

// timeoutExit unwinds the request after the wall-clock budget expired: every
// open span is force-closed as cancelled rather than leaked.
func (o *Orchestrator) timeoutExit(tr *trace.Trace, state *core.ConversationState) (trace.SpanStatus, *OrchestrationError) {
	msg := "request timeout exceeded; planning aborted"
	state.MarkTerminal(core.StatusError, msg)
	tr.Root().AddEvent("status_reason", msg)
	tr.CloseOpen(trace.StatusCancelled)
	o.logger.Error("orchestrator.timeout", "conversation_id", state.ID)
	return trace.StatusCancelled, &OrchestrationError{Kind: ErrKindTimeout, ConversationID: state.ID, Message: msg}
}
