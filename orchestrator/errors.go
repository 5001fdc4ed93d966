package orchestrator

import "fmt"

// ErrorKind categorizes fatal orchestration outcomes.
type ErrorKind string

const (
	// ErrKindAgentFailure means an agent exhausted its retry budget.
	ErrKindAgentFailure ErrorKind = "agent_failure"
	// ErrKindPlannerStall means the planner repeated the same decision with no state change.
	ErrKindPlannerStall ErrorKind = "planner_stall"
	// ErrKindTimeout means the per-request wall-clock budget was exceeded.
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindStepBudget means the loop hit its maximum step count.
	ErrKindStepBudget ErrorKind = "step_budget"
	// ErrKindUnknownTarget means the planner routed to an unregistered agent.
	ErrKindUnknownTarget ErrorKind = "unknown_target"
	// ErrKindStore means conversation persistence failed.
	ErrKindStore ErrorKind = "store"
)

// OrchestrationError is the typed failure Handle returns alongside the
// terminal conversation state. The state itself always carries the
// human-readable summary; this error lets callers branch on the kind.
type OrchestrationError struct {
	Kind           ErrorKind
	ConversationID string
	Message        string
	Err            error
}

// Error implements the error interface.
func (e *OrchestrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("orchestration error [%s] in conversation %s: %s: %v", e.Kind, e.ConversationID, e.Message, e.Err)
	}
	return fmt.Sprintf("orchestration error [%s] in conversation %s: %s", e.Kind, e.ConversationID, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *OrchestrationError) Unwrap() error { return e.Err }
