package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AminosDz/routing-problem/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := logging.ParseLevel("loud")
	require.ErrorIs(t, err, logging.ErrUnknownLevel)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, logging.FormatText, f)

	f, err = logging.ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, logging.FormatJSON, f)

	_, err = logging.ParseFormat("xml")
	require.ErrorIs(t, err, logging.ErrUnknownFormat)
}

func TestNewJSONHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("warn", "json", &buf)
	l.Info("dropped")
	l.Warn("kept", "demand", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.EqualValues(t, 7, rec["demand"])
}

func TestNewTextFallback(t *testing.T) {
	var buf bytes.Buffer
	logging.New("nonsense", "nonsense", &buf).Info("hello")
	require.Contains(t, buf.String(), "msg=hello")
}

func TestContextCarriage(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("info", "text", &buf)
	ctx := logging.WithLogger(context.Background(), l)
	require.Same(t, l, logging.FromContext(ctx))

	// no logger: records are discarded, nothing panics
	logging.FromContext(context.Background()).Error("lost")
	require.Empty(t, buf.String())
}
