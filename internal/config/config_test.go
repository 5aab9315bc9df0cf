package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	prev := GetEnv
	GetEnv = func(key string) string { return env[key] }
	t.Cleanup(func() { GetEnv = prev })
}

func TestNewConfig_Defaults(t *testing.T) {
	withEnv(t, map[string]string{"HOME": "/home/tester"})

	cfg := NewConfig()

	assert.Equal(t, "http://localhost:8000", cfg.APIBase)
	assert.Equal(t, 300*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/home/tester/.pdf-chat/pdf-chat.log", cfg.LogFilePath)
	assert.True(t, cfg.RenderMarkdown)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnv_Overrides(t *testing.T) {
	withEnv(t, map[string]string{
		"HOME":            "/home/tester",
		EnvAPIBase:        "http://rag.internal:9000/",
		EnvRequestTimeout: "45",
		EnvLogFile:        "~/logs/chat.log",
		EnvVerbose:        "true",
		EnvMarkdown:       "false",
	})

	cfg := NewConfig()
	require.NoError(t, cfg.LoadEnv())
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://rag.internal:9000", cfg.APIBase)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/home/tester/logs/chat.log", cfg.LogFilePath)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.RenderMarkdown)
}

func TestLoadEnv_DurationTimeout(t *testing.T) {
	withEnv(t, map[string]string{EnvRequestTimeout: "1m30s"})

	cfg := NewConfig()
	require.NoError(t, cfg.LoadEnv())
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestLoadEnv_InvalidValues(t *testing.T) {
	withEnv(t, map[string]string{EnvVerbose: "sometimes"})
	assert.Error(t, NewConfig().LoadEnv())

	withEnv(t, map[string]string{EnvRequestTimeout: "soon"})
	assert.Error(t, NewConfig().LoadEnv())
}

func TestValidate(t *testing.T) {
	withEnv(t, nil)

	cfg := NewConfig()
	cfg.APIBase = ""
	assert.ErrorContains(t, cfg.Validate(), "APIBase")

	cfg = NewConfig()
	cfg.APIBase = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.RequestTimeout = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "RequestTimeout")

	cfg = NewConfig()
	cfg.RequestTimeout = 0
	assert.NoError(t, cfg.Validate(), "zero timeout means no timeout")
}
