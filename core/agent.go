package core

import (
	"context"

	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/trace"
)

// Agent is the uniform contract every specialized planning agent implements.
//
// Implementations must:
//   - treat the StepContext's conversation snapshot as read-only and return
//     all changes as the result's Fragment
//   - invoke tools only through the StepContext's Invoker
//   - report StepFailure only when no forward progress was possible at all,
//     and StepPartial for incomplete-but-usable results
//   - respect context cancellation.
type Agent interface {
	Name() AgentName
	Description() string
	Execute(sc *StepContext) AgentResult
}

// StepContext carries everything one agent execution needs: the ambient
// cancellation context, a cloned conversation snapshot, the planner action,
// the enclosing trace span and the tool runtime. It is created per loop
// iteration by the orchestrator and discarded afterwards.
type StepContext struct {
	Context      context.Context
	Conversation *ConversationState
	Action       Action
	Trace        *trace.Trace
	Span         *trace.Span
	Tools        Invoker

	*loggerAdapter
}

// NewStepContext constructs a StepContext. conversation must already be a
// clone owned by the step; agents receive it as-is.
func NewStepContext(
	ctx context.Context,
	conversation *ConversationState,
	action Action,
	tr *trace.Trace,
	span *trace.Span,
	tools Invoker,
	logger logging.Logger,
) *StepContext {
	return &StepContext{
		Context:       ctx,
		Conversation:  conversation,
		Action:        action,
		Trace:         tr,
		Span:          span,
		Tools:         tools,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Done mirrors context.Context's Done.
func (sc *StepContext) Done() <-chan struct{} { return sc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (sc *StepContext) Err() error { return sc.Context.Err() }

// Param returns a string action parameter, or the fallback when absent.
func (sc *StepContext) Param(key, fallback string) string {
	if v, ok := sc.Action.Params[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// ToolContext is the constrained surface handed to a capability by the Tool
// Runtime: correlation identifiers plus logging, nothing that could mutate
// conversation state.
type ToolContext struct {
	ctx            context.Context
	conversationID string
	callID         string
	tool           string

	*loggerAdapter
}

// NewToolContext constructs a ToolContext bound to one invocation.
func NewToolContext(ctx context.Context, conversationID, callID, tool string, logger logging.Logger) *ToolContext {
	return &ToolContext{
		ctx:            ctx,
		conversationID: conversationID,
		callID:         callID,
		tool:           tool,
		loggerAdapter:  newLoggerAdapter(logger),
	}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// ConversationID returns the conversation the invocation belongs to.
func (tc *ToolContext) ConversationID() string { return tc.conversationID }

// CallID returns the unique id of this invocation.
func (tc *ToolContext) CallID() string { return tc.callID }

// Tool returns the invoked tool's name.
func (tc *ToolContext) Tool() string { return tc.tool }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.loggerAdapter.Logger() }
