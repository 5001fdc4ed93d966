package core

import "errors"

// ErrNotFound is returned by ConversationStore.Load for unknown conversation ids.
var ErrNotFound = errors.New("conversation not found")

// ConversationStore persists conversation state between requests, keyed by
// conversation identifier. Implementations must return isolated copies so
// callers cannot alias internal state.
type ConversationStore interface {
	Load(conversationID string) (*ConversationState, error)
	Save(state *ConversationState) error
	Delete(conversationID string) error
}
