package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)

	l.Info("chat", "upload finished", map[string]interface{}{"files": 2})
	l.Debug("api", "request", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "upload finished", first.Message)
	assert.Equal(t, "chat", first.ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"files": 2}, first.ContextMap()["details"])

	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])
}

func TestZapLogger_ErrorAttachesError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)

	l.Error("chat", "reset failed", map[string]interface{}{"error": errors.New("connection refused")})

	entries := logs.FilterMessage("reset failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0].ContextMap()["error"])
}

func TestNewFileLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.log")

	l, err := NewFileLogger(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, l.FilePath())

	l.Debug("chat", "hidden at info level", nil)
	l.Info("chat", "visible", map[string]interface{}{"session_id": "s1"})
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"visible"`)
	assert.Contains(t, out, `"module":"chat"`)
	assert.False(t, strings.Contains(out, "hidden at info level"))
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("chat", "ignored", nil)
	assert.Empty(t, l.FilePath())
}
