package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
)

// Config is the full service configuration. Defaults reproduce the authored
// tool (ten dimensions, 1-10 scale, Human/System/AI profiles) so the binary
// runs without a config file; a YAML file and environment variables overlay
// the defaults in that order.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Chart      fit.RadarOptions `yaml:"chart"`
	Scale      fit.Scale        `yaml:"scale"`
	Dimensions []fit.Dimension  `yaml:"dimensions"`
	Profiles   []fit.RawProfile `yaml:"profiles"`
}

type ServerConfig struct {
	Port             string   `yaml:"port"`
	DataDir          string   `yaml:"data_dir"`
	CacheTTLMinutes  int      `yaml:"cache_ttl_minutes"`
	RetentionDays    int      `yaml:"retention_days"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	RequestTimeoutMs int      `yaml:"request_timeout_ms"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	IPLimitPerMin  int  `yaml:"ip_limit_per_min"`
	AssessPerMin   int  `yaml:"assess_per_min"`
	EnableFallback bool `yaml:"enable_fallback"`
}

type ScoringConfig struct {
	Mode fit.ScoringMode `yaml:"mode"`
}

// CacheTTL returns the response cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLMinutes) * time.Minute
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutMs) * time.Millisecond
}

// Load reads the configuration, layering file and environment over the
// authored defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             "8080",
			DataDir:          "./data",
			CacheTTLMinutes:  15,
			RetentionDays:    365,
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			RequestTimeoutMs: 30000,
		},
		RateLimit: RateLimitConfig{
			IPLimitPerMin:  60,
			AssessPerMin:   20,
			EnableFallback: true,
		},
		Scoring: ScoringConfig{
			Mode: fit.ModeNormalizedPercent,
		},
		Chart:      fit.DefaultRadarOptions(),
		Scale:      fit.CanonicalScale,
		Dimensions: fit.DefaultDimensions(),
		Profiles:   fit.DefaultRawProfiles(),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configured dimension/profile shapes and scoring mode.
// A failure here is a configuration bug and fatal at startup.
func (c *Config) Validate() error {
	if !c.Scoring.Mode.Valid() {
		return fmt.Errorf("config: unknown scoring mode %q", c.Scoring.Mode)
	}
	if c.Scale.Width() < 0 {
		return fmt.Errorf("config: inverted scale [%d,%d]", c.Scale.Min, c.Scale.Max)
	}
	// Registry construction performs the full shape and range validation.
	if _, err := fit.NewRegistry(c.Dimensions, c.Scale, c.Profiles); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BuildRegistry constructs the immutable profile registry from the
// configured dimensions and raw profiles.
func (c *Config) BuildRegistry() (*fit.Registry, error) {
	return fit.NewRegistry(c.Dimensions, c.Scale, c.Profiles)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("IP_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.IPLimitPerMin = n
		}
	}
	if v := os.Getenv("SCORING_MODE"); v != "" {
		cfg.Scoring.Mode = fit.ScoringMode(v)
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RetentionDays = n
		}
	}
}
