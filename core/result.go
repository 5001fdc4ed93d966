package core

import (
	"fmt"
	"time"
)

// StepStatus is the outcome an agent reports for one execution.
type StepStatus string

const (
	// StepSuccess means the agent fully completed its phase.
	StepSuccess StepStatus = "success"
	// StepPartial means the agent produced an incomplete but usable result.
	StepPartial StepStatus = "partial"
	// StepFailure means the agent could make no forward progress at all.
	StepFailure StepStatus = "failure"
)

// AgentResult is what an agent execution hands back to the orchestrator: a
// status, a state fragment to merge, and the tool invocations performed (for
// tracing). The orchestrator merges and discards it.
type AgentResult struct {
	Status    StepStatus             `json:"status"`
	Fragment  Fragment               `json:"-"`
	ToolCalls []ToolInvocationRecord `json:"tool_calls,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
}

// FailureResult is a convenience constructor for a no-progress result.
func FailureResult(reason string, calls ...ToolInvocationRecord) AgentResult {
	return AgentResult{Status: StepFailure, Reason: reason, ToolCalls: calls}
}

// FaultKind categorizes tool failures at the runtime boundary.
type FaultKind string

const (
	// FaultTimeout means the capability exceeded its deadline.
	FaultTimeout FaultKind = "timeout"
	// FaultInvalidArguments means the arguments failed schema validation.
	FaultInvalidArguments FaultKind = "invalid-arguments"
	// FaultUpstreamUnavailable means the capability itself errored or panicked.
	FaultUpstreamUnavailable FaultKind = "upstream-unavailable"
	// FaultUnknownTool means no capability is registered under the name.
	FaultUnknownTool FaultKind = "unknown-tool"
)

// ToolFault is the typed failure the Tool Runtime hands to agents. Raw
// capability faults never cross the runtime boundary; they are converted into
// one of these.
type ToolFault struct {
	Tool    string    `json:"tool"`
	Kind    FaultKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (f *ToolFault) Error() string {
	return fmt.Sprintf("tool fault [%s] in %s: %s", f.Kind, f.Tool, f.Message)
}

// NewToolFault constructs a ToolFault.
func NewToolFault(tool string, kind FaultKind, message string) *ToolFault {
	return &ToolFault{Tool: tool, Kind: kind, Message: message}
}

// ToolInvocationRecord captures one tool invocation end to end. Records are
// append-only per agent call and attached to the trace; never mutated after
// creation.
type ToolInvocationRecord struct {
	Tool     string         `json:"tool"`
	Args     map[string]any `json:"args,omitempty"`
	Result   any            `json:"result,omitempty"`
	Fault    *ToolFault     `json:"fault,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// OK reports whether the invocation produced a result.
func (r ToolInvocationRecord) OK() bool { return r.Fault == nil }

// Invoker is the tool-runtime contract consumed by agents. Agents never call
// capabilities directly; every external call goes through Invoke so it is
// traced and fault-contained uniformly.
type Invoker interface {
	// Invoke executes the named tool. The returned record carries either a
	// Result or a Fault, never a raw error.
	Invoke(sc *StepContext, tool string, args map[string]any) ToolInvocationRecord
	// ToolNames lists the registered tool names in sorted order.
	ToolNames() []string
}
