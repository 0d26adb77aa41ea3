package middleware_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"task-middleware/logger"
	"task-middleware/tasks"
	"task-middleware/tasks/middleware"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func TestLogging_RecordsPrevAndNextState(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{state: testState{Count: 1}}
	next := func(msg tasks.Message[testState]) any {
		store.state.Count++
		return "reduced"
	}

	handle := middleware.Logging[testState](logger.New("DEBUG", &buf))(store)(next)
	result := handle(update("INCREMENT"))

	assert.Equal(t, "reduced", result)

	var entry struct {
		Message string         `json:"message"`
		Fields  map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "action dispatched", entry.Message)
	assert.Equal(t, "INCREMENT", entry.Fields["action_type"])
	assert.DeepEqual(t, map[string]any{"Count": float64(1)}, entry.Fields["prev_state"])
	assert.DeepEqual(t, map[string]any{"Count": float64(2)}, entry.Fields["next_state"])
}

func TestLogging_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	next := &nextStage{}

	handle := middleware.Logging[testState](logger.New("INFO", &buf))(store)(next.dispatch)
	handle(update("INCREMENT"))

	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 1, len(next.calls))
}

func TestLogging_PassesEffectsThrough(t *testing.T) {
	var buf bytes.Buffer
	next := &nextStage{}
	handle := middleware.Logging[testState](logger.New("DEBUG", &buf))(&fakeStore{})(next.dispatch)

	effect := &mockEffect{}
	handle(tasks.Run[testState](effect))

	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 1, len(next.calls))
	effect.AssertNotCalled(t, "Perform", mock.Anything, mock.Anything, mock.Anything)
}
