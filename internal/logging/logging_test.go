package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")

	ctx := WithAttrs(context.Background(), slog.String("slot", "save_game"))
	ctx = WithAttrs(ctx, slog.Int("turn", 3))
	logger.DebugContext(ctx, "game saved")

	out := buf.String()
	require.Contains(t, out, "game saved")
	require.Contains(t, out, "slot=save_game")
	require.Contains(t, out, "turn=3")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
