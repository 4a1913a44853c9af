package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Estimator EstimatorConfig `yaml:"estimator" mapstructure:"estimator"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	// RPS rate-limits outgoing LLM calls; 0 disables the limiter.
	RPS   float64 `yaml:"rps" mapstructure:"rps"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// EstimatorConfig configures the analysis pipeline.
type EstimatorConfig struct {
	// RatesFile points at an optional yaml unit-cost override file.
	RatesFile string `yaml:"rates_file" mapstructure:"rates_file"`
	// CharBudget truncates document text sent upstream.
	CharBudget int `yaml:"char_budget" mapstructure:"char_budget"`
	// Fanout bounds concurrent plugin runs in analyze-all.
	Fanout int `yaml:"fanout" mapstructure:"fanout"`
	// EnableAll enables every registered plugin at startup, the
	// development default for the HTTP surface.
	EnableAll bool `yaml:"enable_all" mapstructure:"enable_all"`
	// Enabled lists plugin ids to enable at startup when EnableAll is off.
	Enabled []string `yaml:"enabled" mapstructure:"enabled"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESTIMATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2000)
	v.SetDefault("anthropic.temperature", 0.1)
	v.SetDefault("anthropic.rps", 2.0)
	v.SetDefault("anthropic.burst", 4)
	v.SetDefault("estimator.rates_file", "")
	v.SetDefault("estimator.char_budget", 4000)
	v.SetDefault("estimator.fanout", 4)
	v.SetDefault("estimator.enable_all", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Modes: "analyze" (CLI analysis runs), "serve" (HTTP API).
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "analyze":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
	case "serve":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Anthropic.MaxTokens <= 0 {
		problems = append(problems, "anthropic.max_tokens must be > 0")
	}
	if c.Estimator.Fanout < 1 || c.Estimator.Fanout > 32 {
		problems = append(problems, "estimator.fanout must be between 1 and 32")
	}
	if c.Estimator.CharBudget < 0 {
		problems = append(problems, "estimator.char_budget must be >= 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
