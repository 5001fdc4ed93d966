// Package core contains the shared data model and interfaces of TripMesh:
// conversation state, the trip plan aggregate, planner decisions, agent
// results, tool invocation records and the contracts (Agent, Decider,
// Invoker, ConversationStore) wired together by the orchestrator.
//
// core has no knowledge of concrete agents, tools or stores; those live in
// sibling packages and depend on core, never the other way around.
package core
