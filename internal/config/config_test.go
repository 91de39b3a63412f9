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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, &Config{
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		ComputerMoveDelay: 500 * time.Millisecond,
		DefaultDifficulty: "medium",
		DefaultRounds:     1,
	}, cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
http-addr: ":9090"
log-level: debug
redis-addr: localhost:6379
computer-move-delay: 250ms
default-difficulty: hard
default-rounds: 3
`)
	t.Setenv("DEFAULT_ROUNDS", "5")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.ComputerMoveDelay)
	assert.Equal(t, "hard", cfg.DefaultDifficulty)
	assert.Equal(t, 5, cfg.DefaultRounds, "env overrides the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown difficulty", content: "default-difficulty: impossible\n"},
		{name: "negative rounds", content: "default-rounds: -2\n"},
		{name: "unknown log level", content: "log-level: loud\n"},
		{name: "negative delay", content: "computer-move-delay: -1s\n"},
		{name: "malformed yaml", content: "default-rounds: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv("CONFIG_PATH", "/etc/ttt.yml")
	assert.Equal(t, "/etc/ttt.yml", Path())
}
