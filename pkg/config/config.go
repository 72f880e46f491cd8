package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Security  SecurityConfig  `mapstructure:"security"`
	Events    EventsConfig    `mapstructure:"events"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	SecretKey   string `mapstructure:"secret_key"`
	// TrustedProxies may set X-User-ID and forwarding headers. Empty trusts
	// every peer.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type MetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	EnableLatency   bool `mapstructure:"enable_latency"`
	EnableRuleHits  bool `mapstructure:"enable_rule_hits"`
	EnableProcesses bool `mapstructure:"enable_processes"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig selects the limiter store and its policy. Store is either
// "memory" (per process) or "redis" (shared, with an in-process fallback).
type RateLimitConfig struct {
	Store              string        `mapstructure:"store"`
	Window             time.Duration `mapstructure:"window"`
	AuthenticatedLimit int           `mapstructure:"authenticated_limit"`
	AnonymousLimit     int           `mapstructure:"anonymous_limit"`
	SweepInterval      time.Duration `mapstructure:"sweep_interval"`
	Breaker            BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	MaxFailures      int           `mapstructure:"max_failures"`
	Timeout          time.Duration `mapstructure:"timeout"`
	HalfOpenRequests int           `mapstructure:"half_open_requests"`
}

type ScannerConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	WhitelistMode   string `mapstructure:"whitelist_mode"`
	RulesFile       string `mapstructure:"rules_file"`
}

type SecurityConfig struct {
	ExposePatternDetails bool `mapstructure:"expose_pattern_details"`
	MaxBatchSize         int  `mapstructure:"max_batch_size"`
}

type EventsConfig struct {
	Workers    int              `mapstructure:"workers"`
	BufferSize int              `mapstructure:"buffer_size"`
	Exporters  []ExporterConfig `mapstructure:"exporters"`
}

// ExporterConfig names an exporter and carries its free-form settings,
// decoded by the exporter itself.
type ExporterConfig struct {
	Name     string                 `mapstructure:"name"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues(&globalConfig)
	return globalConfig.Validate()
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.RateLimit.Store == "" {
		cfg.RateLimit.Store = StoreMemory
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if cfg.RateLimit.AuthenticatedLimit <= 0 {
		cfg.RateLimit.AuthenticatedLimit = 3
	}
	if cfg.RateLimit.AnonymousLimit <= 0 {
		cfg.RateLimit.AnonymousLimit = 5
	}
	if cfg.RateLimit.SweepInterval <= 0 {
		cfg.RateLimit.SweepInterval = 5 * time.Minute
	}
	if cfg.RateLimit.Breaker.MaxFailures <= 0 {
		cfg.RateLimit.Breaker.MaxFailures = 5
	}
	if cfg.RateLimit.Breaker.Timeout <= 0 {
		cfg.RateLimit.Breaker.Timeout = 30 * time.Second
	}
	if cfg.RateLimit.Breaker.HalfOpenRequests <= 0 {
		cfg.RateLimit.Breaker.HalfOpenRequests = 1
	}
	if cfg.Scanner.DefaultLanguage == "" {
		cfg.Scanner.DefaultLanguage = "plaintext"
	}
	if cfg.Scanner.WhitelistMode == "" {
		cfg.Scanner.WhitelistMode = "textual"
	}
	if cfg.Security.MaxBatchSize <= 0 {
		cfg.Security.MaxBatchSize = 50
	}
	if cfg.Events.Workers <= 0 {
		cfg.Events.Workers = 4
	}
	if cfg.Events.BufferSize <= 0 {
		cfg.Events.BufferSize = 1000
	}
}

func (c *Config) Validate() error {
	switch c.RateLimit.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("invalid rate_limit.store %q: expected %q or %q", c.RateLimit.Store, StoreMemory, StoreRedis)
	}
	switch c.Scanner.WhitelistMode {
	case "textual", "structural":
	default:
		return fmt.Errorf("invalid scanner.whitelist_mode %q", c.Scanner.WhitelistMode)
	}
	for i, exp := range c.Events.Exporters {
		if exp.Name == "" {
			return fmt.Errorf("events.exporters[%d]: name is required", i)
		}
	}
	return nil
}

// WithDefaults returns a copy of cfg with every unset value defaulted.
func WithDefaults(cfg Config) Config {
	setDefaultValues(&cfg)
	return cfg
}

func GetConfig() *Config {
	return &globalConfig
}
