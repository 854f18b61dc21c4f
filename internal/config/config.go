package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Limits  LimitsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// APIConfig describes the external expense REST API this console talks to.
type APIConfig struct {
	BaseURL string
	// Timeout applies to every outbound request. There is deliberately no
	// per-operation override and no retry.
	Timeout time.Duration
}

// SessionConfig controls the two cookie scopes holding the session credential.
type SessionConfig struct {
	// DurableMaxAge is the lifetime of the "remember me" cookie scope.
	// The tab-scoped cookie has no max-age and dies with the browser session.
	DurableMaxAge time.Duration
	CookieSecure  bool
}

type LimitsConfig struct {
	AuthRatePerSecond int
	AuthBurst         int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),
			Timeout: getDurationEnv("API_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			DurableMaxAge: getDurationEnv("SESSION_DURABLE_MAX_AGE", 30*24*time.Hour),
			CookieSecure:  getBoolEnv("SESSION_COOKIE_SECURE", false),
		},
		Limits: LimitsConfig{
			AuthRatePerSecond: getIntEnv("AUTH_RATE_LIMIT_PER_SECOND", 5),
			AuthBurst:         getIntEnv("AUTH_RATE_LIMIT_BURST", 10),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
