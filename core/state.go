package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Status is the lifecycle status of a conversation.
type Status string

const (
	// StatusActive means the conversation is still being planned.
	StatusActive Status = "active"
	// StatusSuccess means planning completed with a full trip plan.
	StatusSuccess Status = "success"
	// StatusPartial means planning completed with gaps in the trip plan.
	StatusPartial Status = "partial"
	// StatusError means planning terminated on an unrecoverable failure.
	StatusError Status = "error"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusPartial || s == StatusError
}

// Turn is one entry in the ordered conversation transcript.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Agent     AgentName `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserTurn constructs a user-authored turn.
func NewUserTurn(content string) Turn {
	return Turn{Role: "user", Content: content, Timestamp: time.Now().UTC()}
}

// NewAgentTurn constructs an assistant turn authored by the named agent.
func NewAgentTurn(agent AgentName, content string) Turn {
	return Turn{Role: "assistant", Agent: agent, Content: content, Timestamp: time.Now().UTC()}
}

// ConversationState is the single mutable aggregate threaded through the
// orchestration loop. It is owned exclusively by the orchestrator for the
// duration of one request; agents only ever see clones and communicate
// changes back as Fragments.
//
// Invariants:
//   - Steps strictly increases each loop iteration
//   - Status, once terminal, is never cleared
//   - the completed-phase set only grows.
type ConversationState struct {
	ID           string              `json:"id"`
	Turns        []Turn              `json:"turns"`
	Plan         TripPlan            `json:"plan"`
	Phases       map[Phase]time.Time `json:"phases"`
	Steps        int                 `json:"steps"`
	Status       Status              `json:"status"`
	StatusReason string              `json:"status_reason,omitempty"`
	Created      time.Time           `json:"created"`
	Updated      time.Time           `json:"updated"`

	mu sync.RWMutex
}

// NewConversationState creates an active conversation. An empty id gets a
// generated UUID.
func NewConversationState(id string) *ConversationState {
	if id == "" {
		id = NewID()
	}
	now := time.Now().UTC()
	return &ConversationState{
		ID:      id,
		Turns:   []Turn{},
		Phases:  map[Phase]time.Time{},
		Status:  StatusActive,
		Created: now,
		Updated: now,
	}
}

// AppendTurn adds a turn to the transcript.
func (c *ConversationState) AppendTurn(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Turns = append(c.Turns, t)
	c.Updated = time.Now().UTC()
}

// LastUserMessage returns the content of the most recent user turn, or empty.
func (c *ConversationState) LastUserMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == "user" {
			return c.Turns[i].Content
		}
	}
	return ""
}

// HasPhase reports whether the phase has been marked complete.
func (c *ConversationState) HasPhase(p Phase) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.Phases[p]
	return ok
}

// Terminal reports whether the conversation has reached a final status.
func (c *ConversationState) Terminal() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Status.Terminal()
}

// MarkTerminal sets a final status with a human-readable reason. Once
// terminal the status never changes again.
func (c *ConversationState) MarkTerminal(s Status, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Status.Terminal() {
		return
	}
	c.Status = s
	c.StatusReason = reason
	c.Updated = time.Now().UTC()
}

// IncrementStep advances the loop step counter and returns the new value.
func (c *ConversationState) IncrementStep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Steps++
	c.Updated = time.Now().UTC()
	return c.Steps
}

// Merge folds a Fragment into the state: plan fields overwrite when
// populated, phases union, turns append. Merge is the only mutation path an
// agent result takes into the state and is applied solely by the
// orchestrator.
func (c *ConversationState) Merge(f Fragment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Destination != "" {
		c.Plan.Destination = f.Destination
	}
	if f.Dates != nil {
		d := *f.Dates
		c.Plan.Dates = &d
	}
	if len(f.PointsOfInterest) > 0 {
		c.Plan.PointsOfInterest = append([]POI(nil), f.PointsOfInterest...)
	}
	if f.Accommodation != nil {
		h := *f.Accommodation
		c.Plan.Accommodation = &h
	}
	if len(f.Hotels) > 0 {
		c.Plan.Hotels = append([]HotelOption(nil), f.Hotels...)
	}
	if f.Route != nil {
		r := *f.Route
		c.Plan.Route = &r
	}
	if f.Budget != nil {
		b := *f.Budget
		c.Plan.Budget = &b
	}
	now := time.Now().UTC()
	for _, p := range f.Phases {
		if _, ok := c.Phases[p]; !ok {
			c.Phases[p] = now
		}
	}
	c.Turns = append(c.Turns, f.Turns...)
	c.Updated = now
}

// Clone returns a deep copy of the state safe for independent mutation.
func (c *ConversationState) Clone() *ConversationState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &ConversationState{
		ID:           c.ID,
		Turns:        make([]Turn, len(c.Turns)),
		Plan:         c.Plan.Clone(),
		Phases:       make(map[Phase]time.Time, len(c.Phases)),
		Steps:        c.Steps,
		Status:       c.Status,
		StatusReason: c.StatusReason,
		Created:      c.Created,
		Updated:      c.Updated,
	}
	copy(clone.Turns, c.Turns)
	for k, v := range c.Phases {
		clone.Phases[k] = v
	}
	return clone
}

// Fingerprint summarizes the planning-relevant portion of the state. Two
// identical fingerprints across loop iterations mean no forward progress was
// made; the orchestrator uses this for stall detection.
func (c *ConversationState) Fingerprint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	phases := make([]string, 0, len(c.Phases))
	for p := range c.Phases {
		phases = append(phases, string(p))
	}
	sort.Strings(phases)
	return fmt.Sprintf("dest=%s|pois=%d|stay=%t|route=%t|budget=%t|phases=%s|turns=%d",
		c.Plan.Destination,
		len(c.Plan.PointsOfInterest),
		c.Plan.Accommodation != nil,
		c.Plan.Route != nil,
		c.Plan.Budget != nil,
		strings.Join(phases, ","),
		len(c.Turns),
	)
}

// Fragment is the state delta an agent returns from one execution. Zero-value
// fields are "untouched"; populated fields overwrite, phases union in, turns
// append.
type Fragment struct {
	Destination      string
	Dates            *DateRange
	PointsOfInterest []POI
	Accommodation    *HotelOption
	Hotels           []HotelOption
	Route            *RoutePlan
	Budget           *BudgetEstimate
	Phases           []Phase
	Turns            []Turn
}

// Empty reports whether the fragment carries no changes at all.
func (f Fragment) Empty() bool {
	return f.Destination == "" && f.Dates == nil && len(f.PointsOfInterest) == 0 &&
		f.Accommodation == nil && len(f.Hotels) == 0 && f.Route == nil &&
		f.Budget == nil && len(f.Phases) == 0 && len(f.Turns) == 0
}
