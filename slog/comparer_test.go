package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/cfpwatch/mock"
	cfpslog "github.com/fwojciec/cfpwatch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingComparer_Compare(t *testing.T) {
	t.Parallel()

	t.Run("logs parsed score", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Comparer{
			CompareFn: func(_ context.Context, _, _ string) (string, error) {
				return "## Score\n3/4", nil
			},
		}

		c := cfpslog.NewLoggingComparer(inner, logger)
		resp, err := c.Compare(context.Background(), "kb", "cfp")

		require.NoError(t, err)
		assert.Equal(t, "## Score\n3/4", resp)
		output := buf.String()
		assert.Contains(t, output, "compare")
		assert.Contains(t, output, "score=3")
		assert.Contains(t, output, "kb_bytes=2")
		assert.Contains(t, output, "candidate_bytes=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Comparer{
			CompareFn: func(_ context.Context, _, _ string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		c := cfpslog.NewLoggingComparer(inner, logger)
		_, err := c.Compare(context.Background(), "kb", "cfp")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "score=-1")
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}
