// Package tripmesh provides a high-level façade over the planner,
// orchestrator, agents and tool runtime, enabling construction of a complete
// multi-agent trip planner in a few lines. Most applications interact with
// this package by:
//  1. Creating a TripMesh via New() (optionally overriding config, store, model or logger)
//  2. Calling Plan() with a conversation id and the traveler's message
//  3. Inspecting the returned conversation state and its trip plan
//
// The façade delegates orchestration to orchestrator.Orchestrator while
// keeping setup concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable store and a
// structured logger.
package tripmesh

import (
	"context"

	"github.com/hupe1980/tripmesh/agent"
	"github.com/hupe1980/tripmesh/config"
	"github.com/hupe1980/tripmesh/conversation"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/orchestrator"
	"github.com/hupe1980/tripmesh/planner"
	"github.com/hupe1980/tripmesh/tool"
	"github.com/hupe1980/tripmesh/tools"
	"github.com/hupe1980/tripmesh/trace"
)

// Options configures the TripMesh instance.
type Options struct {
	// Config carries loop bounds, timeouts and logging settings. Defaults to
	// config.Default().
	Config config.Config

	// Store persists conversation state between requests. Defaults to an
	// in-memory store.
	Store core.ConversationStore

	// Model optionally phrases agent summary turns. Without one the agents
	// use deterministic templates.
	Model model.Model

	// ExtraTools are registered on top of the built-in domain tools and
	// shadow them on name collision.
	ExtraTools []tool.Tool

	// Sink receives the completed trace of every request. Defaults to a
	// logger-backed sink.
	Sink trace.Sink

	// Logger overrides the logger built from Config.Logging. Leave nil to
	// get a structured logger honoring the configured level and format.
	Logger logging.Logger
}

// TripMesh is the high-level façade aggregating the orchestrator and its
// services.
type TripMesh struct {
	opts         Options
	orchestrator *orchestrator.Orchestrator
}

// New creates a TripMesh instance with optional overrides. Any unset service
// is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *TripMesh {
	opts := Options{
		Config: config.Default(),
		Store:  conversation.NewInMemoryStore(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(&logging.LoggerConfig{
			Level:  logging.ParseLevel(opts.Config.Logging.Level),
			Format: opts.Config.Logging.Format,
		})
	}

	runtime := tool.NewRuntime(func(o *tool.Options) {
		o.ToolTimeout = opts.Config.ToolTimeout()
		o.Logger = opts.Logger
	})
	tools.RegisterDefaults(runtime)
	for _, t := range opts.ExtraTools {
		runtime.Register(t)
	}

	agentOpts := []agent.Option{}
	if opts.Model != nil {
		agentOpts = append(agentOpts, agent.WithModel(opts.Model))
	}
	agents := []core.Agent{
		agent.NewLocationAgent(agentOpts...),
		agent.NewStayAgent(agentOpts...),
		agent.NewRouteAgent(agentOpts...),
		agent.NewBudgetAgent(agentOpts...),
	}

	orch := orchestrator.New(planner.New(), agents, runtime, func(o *orchestrator.Options) {
		o.MaxSteps = opts.Config.Orchestrator.MaxSteps
		o.RetryLimit = opts.Config.Orchestrator.RetryLimit
		o.StallLimit = opts.Config.Orchestrator.StallLimit
		o.Timeout = opts.Config.OrchestratorTimeout()
		o.Store = opts.Store
		o.Sink = opts.Sink
		o.Logger = opts.Logger
	})

	return &TripMesh{opts: opts, orchestrator: orch}
}

// Plan processes one traveler message for the given conversation and returns
// the updated conversation state. The state is usable even when a non-nil
// error reports a fatal loop outcome.
func (tm *TripMesh) Plan(ctx context.Context, conversationID, message string) (*core.ConversationState, error) {
	return tm.orchestrator.Handle(ctx, conversationID, message)
}

// Card returns the discovery document describing this planner's agents and
// tools.
func (tm *TripMesh) Card() core.Card {
	return tm.orchestrator.Card()
}

// DeleteConversation removes a conversation from the store.
func (tm *TripMesh) DeleteConversation(conversationID string) error {
	return tm.orchestrator.Delete(conversationID)
}
