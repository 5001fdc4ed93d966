// Package agent provides the four specialized planning agents (Location,
// Stay, Route, Budget). Each implements core.Agent over exactly one planning
// phase; they differ only in which tools they invoke and which plan fields
// they populate. Agents never mutate the conversation snapshot they receive
// and never call capabilities outside the tool runtime.
package agent

import (
	"context"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// phraseTimeout bounds the optional model call for a summary turn so a slow
// provider cannot eat the request budget.
const phraseTimeout = 10 * time.Second

// BaseAgent bundles shared identity and summary-phrasing helpers. Embed it in
// concrete agent implementations and supply an Execute method to satisfy the
// core.Agent interface.
type BaseAgent struct {
	name        core.AgentName
	description string
	model       model.Model
}

// Option customizes a concrete agent at construction time.
type Option func(*BaseAgent)

// WithModel wires an optional text model used to phrase the agent's summary
// turn. Without one the agent falls back to a deterministic template.
func WithModel(m model.Model) Option {
	return func(b *BaseAgent) { b.model = m }
}

// NewBaseAgent constructs a BaseAgent.
func NewBaseAgent(name core.AgentName, description string) BaseAgent {
	return BaseAgent{name: name, description: description}
}

// Name returns the agent's routing identifier.
func (b *BaseAgent) Name() core.AgentName { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// phrase returns a summary line for the agent's turn: the model's wording
// when one is configured, otherwise the deterministic fallback. Model errors
// degrade silently to the fallback; a summary is never worth failing a step.
func (b *BaseAgent) phrase(sc *core.StepContext, instructions, fallback string) string {
	if b.model == nil {
		return fallback
	}
	ctx, cancel := context.WithTimeout(sc.Context, phraseTimeout)
	defer cancel()
	resp, err := b.model.Complete(ctx, model.Request{Instructions: instructions, Prompt: fallback})
	if err != nil || resp.Text == "" {
		sc.LogDebug("agent.phrase.fallback", "agent", string(b.name), "error", errString(err))
		return fallback
	}
	return resp.Text
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
