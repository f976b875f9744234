package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MLouchini/sitepilot/internal/config"
)

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate(), "the shipped defaults must always validate")

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "sitepilot", cfg.Logger.ServiceName)
	assert.Equal(t, 4, cfg.Engine.ValidationConcurrency)
	assert.False(t, cfg.Resolver.KeywordHeuristic)
	assert.Equal(t, 0.5, cfg.Resolver.KeywordThreshold)
	assert.Equal(t, 2.0, cfg.Narrator.StepsPerSecond)
}

func TestNewConfigFromViper_Overrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("engine.validation_concurrency", 8)
	v.Set("resolver.keyword_heuristic", true)
	v.Set("resolver.keyword_threshold", 0.75)

	cfg, err := config.NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.ValidationConcurrency)
	assert.True(t, cfg.Resolver.KeywordHeuristic)
	assert.Equal(t, 0.75, cfg.Resolver.KeywordThreshold)
}

func TestNewConfigFromViper_RejectsInvalid(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("engine.validation_concurrency", 0)

	_, err := config.NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "zero validation concurrency",
			mutate:  func(c *config.Config) { c.Engine.ValidationConcurrency = 0 },
			wantErr: "validation_concurrency",
		},
		{
			name:    "negative validation concurrency",
			mutate:  func(c *config.Config) { c.Engine.ValidationConcurrency = -2 },
			wantErr: "validation_concurrency",
		},
		{
			name: "heuristic threshold above one",
			mutate: func(c *config.Config) {
				c.Resolver.KeywordHeuristic = true
				c.Resolver.KeywordThreshold = 1.5
			},
			wantErr: "keyword_threshold",
		},
		{
			name: "heuristic threshold zero",
			mutate: func(c *config.Config) {
				c.Resolver.KeywordHeuristic = true
				c.Resolver.KeywordThreshold = 0
			},
			wantErr: "keyword_threshold",
		},
		{
			name: "threshold unchecked while heuristic is off",
			mutate: func(c *config.Config) {
				c.Resolver.KeywordHeuristic = false
				c.Resolver.KeywordThreshold = 0
			},
		},
		{
			name:    "non-positive narration rate",
			mutate:  func(c *config.Config) { c.Narrator.StepsPerSecond = 0 },
			wantErr: "steps_per_second",
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
