// Package conversation provides conversation-state persistence
// implementations.
package conversation

import (
	"sync"

	"github.com/hupe1980/tripmesh/core"
)

// InMemoryStore is a volatile ConversationStore implementation storing state
// in a process local map. It is safe for concurrent access and best suited
// for tests or ephemeral demo servers. Each returned state is cloned to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*core.ConversationState
}

// NewInMemoryStore constructs an empty in-memory conversation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{conversations: make(map[string]*core.ConversationState)}
}

var _ core.ConversationStore = (*InMemoryStore)(nil)

// Load returns a clone of the stored state or core.ErrNotFound.
func (s *InMemoryStore) Load(conversationID string) (*core.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.conversations[conversationID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return state.Clone(), nil
}

// Save stores a clone of the provided state snapshot.
func (s *InMemoryStore) Save(state *core.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[state.ID] = state.Clone()
	return nil
}

// Delete removes a conversation. Deleting an unknown id is a no-op.
func (s *InMemoryStore) Delete(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	return nil
}

// Len returns the number of stored conversations.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
