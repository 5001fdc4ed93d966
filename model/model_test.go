package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("summarize the stay", "A lovely stay awaits.")
	m.SetFallback("generic answer")

	resp, err := m.Complete(context.Background(), Request{Prompt: "summarize the stay"})
	require.NoError(t, err)
	assert.Equal(t, "A lovely stay awaits.", resp.Text)

	resp, err = m.Complete(context.Background(), Request{Prompt: "anything else"})
	require.NoError(t, err)
	assert.Equal(t, "generic answer", resp.Text)

	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
