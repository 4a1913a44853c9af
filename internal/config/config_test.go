package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chtmp runs the test from an empty temp dir so no stray config.yaml is found.
func chtmp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(2000), cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 0.1, cfg.Anthropic.Temperature, 0.001)
	assert.InDelta(t, 2.0, cfg.Anthropic.RPS, 0.001)
	assert.Equal(t, 4, cfg.Anthropic.Burst)
	assert.Equal(t, 4000, cfg.Estimator.CharBudget)
	assert.Equal(t, 4, cfg.Estimator.Fanout)
	assert.True(t, cfg.Estimator.EnableAll)
	assert.Empty(t, cfg.Estimator.Enabled)
	assert.Empty(t, cfg.Estimator.RatesFile)
}

func TestLoadFromYAML(t *testing.T) {
	chtmp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
anthropic:
  model: claude-haiku-4-5-20251001
  max_tokens: 1000
estimator:
  fanout: 8
  enable_all: false
  enabled:
    - structural.concrete
    - mep.plumbing_systems
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(1000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 8, cfg.Estimator.Fanout)
	assert.False(t, cfg.Estimator.EnableAll)
	assert.Equal(t, []string{"structural.concrete", "mep.plumbing_systems"}, cfg.Estimator.Enabled)
	// Defaults still apply for unset values
	assert.Equal(t, 4000, cfg.Estimator.CharBudget)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chtmp(t)

	yaml := `
log:
  level: debug
server:
  port: 9090
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("ESTIMATOR_LOG_LEVEL", "warn")
	t.Setenv("ESTIMATOR_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtmp(t)

	t.Setenv("ESTIMATOR_ANTHROPIC_KEY", "sk-ant-test")
	t.Setenv("ESTIMATOR_ESTIMATOR_FANOUT", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
	assert.Equal(t, 2, cfg.Estimator.Fanout)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config populated the way Load's defaults would be.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Anthropic.MaxTokens = 2000
	cfg.Estimator.Fanout = 4
	cfg.Estimator.CharBudget = 4000
	cfg.Server.Port = 8000
	return cfg
}

func TestValidateAnalyze_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("analyze"))
}

func TestValidateAnalyze_MissingKey(t *testing.T) {
	cfg := validDefaults()
	cfg.Anthropic.Key = ""

	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateFanoutBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Estimator.Fanout = 0
	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fanout must be between 1 and 32")

	cfg.Estimator.Fanout = 33
	err = cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fanout must be between 1 and 32")

	cfg.Estimator.Fanout = 32
	assert.NoError(t, cfg.Validate("analyze"))
}

func TestValidateMaxTokens(t *testing.T) {
	cfg := validDefaults()
	cfg.Anthropic.MaxTokens = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens must be > 0")
}

func TestValidateCharBudget(t *testing.T) {
	cfg := validDefaults()
	cfg.Estimator.CharBudget = -1

	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "char_budget must be >= 0")
}
