package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter(t *testing.T) {
	t.Parallel()

	withSystem, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)
	bare, err := gemini.NewTokenCounterWithSystem("gemini-2.0-flash", "")
	require.NoError(t, err)

	prompt := cfpwatch.BuildComparisonPrompt("Research on federated learning at the wireless edge.", "Special issue on edge AI for 6G networks.")

	t.Run("empty prompt counts as zero", func(t *testing.T) {
		t.Parallel()

		n, err := withSystem.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("prompt alone is positive", func(t *testing.T) {
		t.Parallel()

		n, err := bare.CountTokens(context.Background(), prompt)

		require.NoError(t, err)
		assert.Positive(t, n)
	})

	t.Run("system instructions add to the count", func(t *testing.T) {
		t.Parallel()

		withN, err := withSystem.CountTokens(context.Background(), prompt)
		require.NoError(t, err)
		bareN, err := bare.CountTokens(context.Background(), prompt)
		require.NoError(t, err)

		assert.Greater(t, withN, bareN)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := bare.CountTokens(ctx, prompt)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounterWithSystem("not-a-gemini-model", "")

	require.Error(t, err)
	assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(err))
}
