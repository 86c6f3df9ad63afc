package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  mode: debug
knowledge:
  path: kb/knowledge.yaml
  watch: true
chat:
  typing_delay: 0s
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "kb/knowledge.yaml", cfg.Knowledge.Path)
	assert.True(t, cfg.Knowledge.Watch)
	assert.Equal(t, time.Duration(0), cfg.Chat.TypingDelay)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":7070\"\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("HELPDESK_ADDR", ":6060")
	t.Setenv("HELPDESK_MODE", "test")
	t.Setenv("HELPDESK_KNOWLEDGE_PATH", "other.yaml")
	t.Setenv("HELPDESK_WATCH", "true")
	t.Setenv("HELPDESK_TYPING_DELAY", "100ms")
	t.Setenv("HELPDESK_METRICS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Server.Addr)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "other.yaml", cfg.Knowledge.Path)
	assert.True(t, cfg.Knowledge.Watch)
	assert.Equal(t, 100*time.Millisecond, cfg.Chat.TypingDelay)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad env bool", func(t *testing.T) {
		t.Setenv("HELPDESK_WATCH", "maybe")
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  mode: turbo\n"))
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("delay too long", func(t *testing.T) {
		_, err := Load(writeConfig(t, "chat:\n  typing_delay: 1m\n"))
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: ["))
		assert.Error(t, err)
	})
}
