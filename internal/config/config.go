package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr              string        `yaml:"addr"`
	JWTSecret         string        `yaml:"jwt_secret"`
	APITimeout        time.Duration `yaml:"timeout"`
	DatabasePath      string        `yaml:"database_path"`
	RefreshInterval   time.Duration `yaml:"refresh_interval"`
	CountdownInterval time.Duration `yaml:"countdown_interval"`
	DefaultSLAHours   float64       `yaml:"default_sla_hours"`
	Xano              XanoConfig    `yaml:"xano"`
}

// XanoConfig holds settings for the upstream Xano workspace client.
type XanoConfig struct {
	// BaseURL is the HTTP endpoint of the workspace API group,
	// e.g. https://x8ki.xano.io/api:mindpick
	BaseURL string `yaml:"base_url"`
	// APIKey is sent as a bearer token on every upstream request
	APIKey string `yaml:"api_key"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
	// Retries is number of retry attempts for transient failures
	Retries int `yaml:"retries"`
	// Backoff is the base backoff between retries
	Backoff time.Duration `yaml:"backoff"`
	// CircuitFailureThreshold opens circuit after this many consecutive failures
	CircuitFailureThreshold int `yaml:"circuit_failure_threshold"`
	// CircuitReset is the duration after which the circuit attempts to half-open
	CircuitReset time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:              getEnv("MINDPICK_ADDR", ":8080"),
		JWTSecret:         getEnv("MINDPICK_JWT_SECRET", "supersecretkey"),
		APITimeout:        15 * time.Second,
		DatabasePath:      getEnv("MINDPICK_DATABASE_PATH", "mindpick.db"),
		RefreshInterval:   1 * time.Minute,
		CountdownInterval: 1 * time.Minute,
		DefaultSLAHours:   24,
		Xano: XanoConfig{
			BaseURL:                 getEnv("MINDPICK_XANO_URL", "http://localhost:9090"),
			APIKey:                  getEnv("MINDPICK_XANO_KEY", ""),
			Timeout:                 10 * time.Second,
			Retries:                 3,
			Backoff:                 500 * time.Millisecond,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks for configuration that is unsafe or unusable outside of
// development. MINDPICK_ENV=development relaxes the secret check.
func (c *Config) Validate() error {
	if os.Getenv("MINDPICK_ENV") != "development" && c.JWTSecret == "supersecretkey" {
		return fmt.Errorf("jwt_secret must be changed outside development")
	}
	if c.Xano.BaseURL == "" {
		return fmt.Errorf("xano.base_url is required")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive")
	}
	if c.CountdownInterval <= 0 {
		return fmt.Errorf("countdown_interval must be positive")
	}
	if c.DefaultSLAHours <= 0 {
		return fmt.Errorf("default_sla_hours must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
