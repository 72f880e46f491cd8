package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	cfg := WithDefaults(Config{})

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, StoreMemory, cfg.RateLimit.Store)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 3, cfg.RateLimit.AuthenticatedLimit)
	assert.Equal(t, 5, cfg.RateLimit.AnonymousLimit)
	assert.Equal(t, "plaintext", cfg.Scanner.DefaultLanguage)
	assert.Equal(t, "textual", cfg.Scanner.WhitelistMode)
	assert.Equal(t, 50, cfg.Security.MaxBatchSize)
	assert.False(t, cfg.Security.ExposePatternDetails)
	require.NoError(t, cfg.Validate())
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := WithDefaults(Config{
		RateLimit: RateLimitConfig{Store: StoreRedis, AuthenticatedLimit: 10, Window: 30 * time.Second},
		Scanner:   ScannerConfig{WhitelistMode: "structural"},
	})

	assert.Equal(t, StoreRedis, cfg.RateLimit.Store)
	assert.Equal(t, 10, cfg.RateLimit.AuthenticatedLimit)
	assert.Equal(t, 5, cfg.RateLimit.AnonymousLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "structural", cfg.Scanner.WhitelistMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.RateLimit.Store = "memcached" },
			wantErr: "rate_limit.store",
		},
		{
			name:    "unknown whitelist mode",
			mutate:  func(c *Config) { c.Scanner.WhitelistMode = "fuzzy" },
			wantErr: "scanner.whitelist_mode",
		},
		{
			name: "exporter without name",
			mutate: func(c *Config) {
				c.Events.Exporters = []ExporterConfig{{Settings: map[string]interface{}{"host": "kafka"}}}
			},
			wantErr: "events.exporters[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WithDefaults(Config{})
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("RATE_LIMIT_ANONYMOUS_LIMIT", "7")

	require.NoError(t, Load("../../config"))
	cfg := GetConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.RateLimit.AuthenticatedLimit)
	assert.Equal(t, 7, cfg.RateLimit.AnonymousLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, StoreMemory, cfg.RateLimit.Store)
}
