// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Narrator NarratorConfig `mapstructure:"narrator" yaml:"narrator"`

	// Run gets its marching orders from CLI flags, not the config file.
	Run RunConfig `mapstructure:"-" yaml:"-"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// EngineConfig configures the resolve-validate-build pipeline.
type EngineConfig struct {
	// ValidationConcurrency bounds how many slots of one invocation are
	// validated in parallel. Verdict order is always the declared input
	// order regardless of this value.
	ValidationConcurrency int `mapstructure:"validation_concurrency" yaml:"validation_concurrency"`
}

// ResolverConfig configures goal-to-action resolution. The reference behavior
// is explicit id matching; the keyword heuristic is an opt-in fallback for
// free-text goals.
type ResolverConfig struct {
	KeywordHeuristic bool    `mapstructure:"keyword_heuristic" yaml:"keyword_heuristic"`
	KeywordThreshold float64 `mapstructure:"keyword_threshold" yaml:"keyword_threshold"`
}

// NarratorConfig paces the human-watchable step playback. It has no effect on
// validation correctness or ordering.
type NarratorConfig struct {
	StepsPerSecond float64 `mapstructure:"steps_per_second" yaml:"steps_per_second"`
}

// RunConfig centralizes the runtime settings of a single `run` invocation.
type RunConfig struct {
	ManifestPath string
	GoalID       string
	Inputs       map[string]string
	Output       string
	Format       string
	Narrate      bool
	Bind         bool
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "sitepilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Engine --
	v.SetDefault("engine.validation_concurrency", 4)

	// -- Resolver --
	v.SetDefault("resolver.keyword_heuristic", false)
	v.SetDefault("resolver.keyword_threshold", 0.5)

	// -- Narrator --
	v.SetDefault("narrator.steps_per_second", 2.0)
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Engine.ValidationConcurrency <= 0 {
		return fmt.Errorf("engine.validation_concurrency must be a positive integer")
	}
	if c.Resolver.KeywordHeuristic {
		if c.Resolver.KeywordThreshold <= 0.0 || c.Resolver.KeywordThreshold > 1.0 {
			return fmt.Errorf("resolver.keyword_threshold must be in (0.0, 1.0]")
		}
	}
	if c.Narrator.StepsPerSecond <= 0 {
		return fmt.Errorf("narrator.steps_per_second must be positive")
	}
	return nil
}
