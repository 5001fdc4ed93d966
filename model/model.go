// Package model defines the optional text model agents use to phrase their
// summary turns. The orchestration core never depends on a model; agents fall
// back to deterministic templates when none is configured.
package model

import "context"

// Request captures a single completion request.
type Request struct {
	// Instructions is the system-level guidance for the completion.
	Instructions string `json:"instructions,omitempty"`
	// Prompt is the user-level input.
	Prompt string `json:"prompt"`
}

// Response is the completed text.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface agents use to phrase text.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	fallback  string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
		fallback:  "mock completion",
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// SetFallback sets the completion returned for unregistered prompts.
func (m *MockModel) SetFallback(text string) { m.fallback = text }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (Response, error) {
	if text, ok := m.responses[req.Prompt]; ok {
		return Response{Text: text}, nil
	}
	return Response{Text: m.fallback}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
