// Package tool implements the tool-invocation runtime that lets agents invoke
// structured capabilities (lookups, computations, external APIs) with schema
// validated arguments, uniform tracing and hard fault containment: whatever a
// capability does (error, panic, overrun its deadline) callers only ever see
// a typed result or a typed fault.
package tool

import "github.com/hupe1980/tripmesh/core"

// Tool defines the interface for a callable capability.
//
// Tool implementations should:
//   - Provide clear, descriptive names (dotted namespacing, e.g. "maps.search_places")
//   - Define proper JSON schema for parameters
//   - Be thread-safe; one registered instance serves all concurrent conversations
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with structured arguments. Returned errors are
	// converted into typed faults by the Runtime; Call never needs to wrap
	// them itself.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

var _ core.Invoker = (*Runtime)(nil)
