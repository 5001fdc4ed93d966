package core

// Capability describes one specialized skill in the discovery card.
type Capability struct {
	Agent       AgentName `json:"agent"`
	Phase       Phase     `json:"phase"`
	Description string    `json:"description"`
}

// Card is the static discovery document describing the planner's identity,
// its specialized capabilities and the tools it can invoke. Pure metadata; no
// runtime behavior.
type Card struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Version      string       `json:"version"`
	Capabilities []Capability `json:"capabilities"`
	Tools        []string     `json:"tools"`
}
