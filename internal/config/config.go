package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the OracleBall server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Fixtures FixturesConfig
	Oracle   OracleConfig
}

type ServerConfig struct {
	Port            int
	Env             string
	AllowedOrigins  []string
	RateLimitPerMin int
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// FixturesConfig points at the external fixtures feed. BaseURL is optional:
// without it the server only serves the seeded match list.
type FixturesConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// OracleConfig tunes the fake analysis. Defaults reproduce the original
// oracle ball: a 3 second think, scores in [0,4], confidence in [75,98].
type OracleConfig struct {
	AnalysisDelay time.Duration
	MaxGoals      int
	MinConfidence int
	MaxConfidence int
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("ORACLEBALL_PORT", 8080),
			Env:             envString("ORACLEBALL_ENV", "development"),
			AllowedOrigins:  envList("ORACLEBALL_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitPerMin: envInt("ORACLEBALL_RATE_LIMIT_PER_MIN", 60),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Fixtures: FixturesConfig{
			BaseURL:  os.Getenv("FIXTURES_BASE_URL"),
			APIToken: os.Getenv("FIXTURES_API_TOKEN"),
			Timeout:  envDuration("FIXTURES_TIMEOUT", 30*time.Second),
		},
		Oracle: OracleConfig{
			AnalysisDelay: envDurationMillis("ORACLE_ANALYSIS_DELAY_MS", 3*time.Second),
			MaxGoals:      envInt("ORACLE_MAX_GOALS", 4),
			MinConfidence: envInt("ORACLE_MIN_CONFIDENCE", 75),
			MaxConfidence: envInt("ORACLE_MAX_CONFIDENCE", 98),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Fixtures.BaseURL != "" &&
		!strings.HasPrefix(c.Fixtures.BaseURL, "http://") && !strings.HasPrefix(c.Fixtures.BaseURL, "https://") {
		return fmt.Errorf("FIXTURES_BASE_URL must start with http:// or https://, got %q", c.Fixtures.BaseURL)
	}

	if c.Oracle.AnalysisDelay <= 0 {
		return fmt.Errorf("ORACLE_ANALYSIS_DELAY_MS must be positive, got %v", c.Oracle.AnalysisDelay)
	}
	if c.Oracle.MaxGoals < 0 {
		return fmt.Errorf("ORACLE_MAX_GOALS must be >= 0, got %d", c.Oracle.MaxGoals)
	}
	if c.Oracle.MinConfidence < 0 || c.Oracle.MaxConfidence > 100 {
		return fmt.Errorf("confidence bounds must lie within [0, 100], got [%d, %d]",
			c.Oracle.MinConfidence, c.Oracle.MaxConfidence)
	}
	if c.Oracle.MinConfidence > c.Oracle.MaxConfidence {
		return fmt.Errorf("ORACLE_MIN_CONFIDENCE (%d) must not exceed ORACLE_MAX_CONFIDENCE (%d)",
			c.Oracle.MinConfidence, c.Oracle.MaxConfidence)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationMillis(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
