package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// insecureDefaultSecret is only acceptable in development.
const insecureDefaultSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
}

// LoadConfig builds the configuration from environment defaults and an
// optional YAML file overriding them.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ASCEND_ADDR", ":8080"),
		JWTSecret:     getEnv("ASCEND_JWT_SECRET", insecureDefaultSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("ASCEND_DATABASE_PATH", "ascend.db"),
		TokenDuration: 24 * time.Hour,
		SessionTTL:    24 * time.Hour,
		RedisAddr:     getEnv("ASCEND_REDIS_ADDR", ""),
		RedisPassword: getEnv("ASCEND_REDIS_PASSWORD", ""),
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

// Validate rejects configurations that cannot serve requests safely.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.JWTSecret == insecureDefaultSecret && os.Getenv("ASCEND_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set ASCEND_JWT_SECRET")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
