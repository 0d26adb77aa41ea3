package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{" warn ", WARN},
		{"ERROR", ERROR},
		{"INFO", INFO},
		{"FATAL", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := New("WARN", &buf)

	lg.Debug("debug message")
	lg.Info("info message")
	lg.Warn("warn message")
	lg.Error("error message")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "error message", entries[1].Message)
}

func TestLogger_Effect(t *testing.T) {
	var buf bytes.Buffer
	lg := New("INFO", &buf)

	lg.Effect("effect-1", "performing effect", map[string]any{"effect": "*effects.Fetch"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "performing effect", entries[0].Message)
	assert.Equal(t, "effect-1", entries[0].Fields["effect_id"])
	assert.Equal(t, "effect", entries[0].Fields["type"])
	assert.Equal(t, "*effects.Fetch", entries[0].Fields["effect"])
}

func TestLogger_ActionOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer

	New("INFO", &buf).Action("POSTS_ADD")
	assert.Equal(t, 0, buf.Len())

	New("DEBUG", &buf).Action("POSTS_ADD", map[string]any{"kind": "update"})
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "POSTS_ADD", entries[0].Fields["action_type"])
	assert.Equal(t, "update", entries[0].Fields["kind"])
}

func TestLogger_HTTP(t *testing.T) {
	var buf bytes.Buffer
	lg := New("INFO", &buf)

	lg.HTTP("GET", "/posts", 200, 5*time.Millisecond)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "GET", entries[0].Fields["http_method"])
	assert.Equal(t, float64(200), entries[0].Fields["http_status"])
}

func TestLogger_UnencodableFieldsFallback(t *testing.T) {
	var buf bytes.Buffer
	lg := New("INFO", &buf)

	lg.Info("channel field", map[string]any{"ch": make(chan int)})

	assert.Assert(t, strings.HasPrefix(buf.String(), "[INFO] channel field"))
}

func TestLogger_Enabled(t *testing.T) {
	lg := Discard()
	assert.Assert(t, !lg.Enabled(WARN))
	assert.Assert(t, lg.Enabled(ERROR))
}
