package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger_JSONOutput(t *testing.T) {
	require := require.New(t)
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	l := NewSlogWriter(&buf, InfoLevel, false)

	l.Debug("hidden")
	require.Zero(buf.Len())

	l.With("peer", "jmri").Info("line received", "line", "VN2.0")

	var rec map[string]any
	require.NoError(json.Unmarshal(buf.Bytes(), &rec))
	require.Equal("line received", rec["msg"])
	require.Equal("VN2.0", rec["line"])
	require.Equal("jmri", rec["peer"])
	require.Contains(rec, "ts")
	require.NotContains(rec, "time")
}

func TestSlogLogger_SetLevel(t *testing.T) {
	require := require.New(t)
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	l := NewSlogWriter(&buf, ErrorLevel, false)
	require.Equal(ErrorLevel, l.Level())

	l.Warn("dropped")
	require.Zero(buf.Len())

	l.SetLevel(DebugLevel)
	require.Equal(DebugLevel, l.Level())

	// child loggers share the parent's level
	child := l.With("k", "v")
	child.Debug("kept")
	require.Contains(buf.String(), "kept")
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.Info("ignored", "k", 1)
	require.Equal(t, FatalLevel, l.Level())
	require.Equal(t, l, l.With("k", "v"))
}
