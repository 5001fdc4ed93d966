package conversation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
)

func TestInMemoryStore_LoadMissing(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Load("missing")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestInMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewInMemoryStore()

	state := core.NewConversationState("conv-1")
	state.AppendTurn(core.NewUserTurn("plan a trip"))
	require.NoError(t, store.Save(state))

	loaded, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", loaded.ID)
	require.Len(t, loaded.Turns, 1)
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryStore_CloneIsolation(t *testing.T) {
	store := NewInMemoryStore()

	state := core.NewConversationState("conv-1")
	state.Merge(core.Fragment{Destination: "Delhi"})
	require.NoError(t, store.Save(state))

	// Mutating the original after Save must not leak into the store.
	state.Merge(core.Fragment{Destination: "Mumbai"})
	loaded, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", loaded.Plan.Destination)

	// Mutating a loaded copy must not leak either.
	loaded.Merge(core.Fragment{Destination: "Bangalore"})
	again, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", again.Plan.Destination)
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Save(core.NewConversationState("conv-1")))

	require.NoError(t, store.Delete("conv-1"))
	_, err := store.Load("conv-1")
	assert.True(t, errors.Is(err, core.ErrNotFound))

	// Deleting an unknown id is a no-op.
	assert.NoError(t, store.Delete("missing"))
}
