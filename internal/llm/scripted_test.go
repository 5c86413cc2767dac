package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedClientReplaysInOrder(t *testing.T) {
	c := NewScriptedClient(Completion{Text: "one", TokensUsed: 1}, Completion{Text: "two", TokensUsed: 2})
	ctx := context.Background()

	first, err := c.Complete(ctx, "s", "a")
	require.NoError(t, err)
	second, err := c.Complete(ctx, "s", "b")
	require.NoError(t, err)
	third, err := c.Complete(ctx, "s", "c")
	require.NoError(t, err)

	assert.Equal(t, "one", first.Text)
	assert.Equal(t, "two", second.Text)
	assert.Equal(t, "two", third.Text)

	calls := c.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "b", calls[1].User)
}

func TestFailingClient(t *testing.T) {
	boom := errors.New("boom")
	c := NewFailingClient(boom)

	_, err := c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, c.Calls(), 1)
}
