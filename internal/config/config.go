package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Storage  StorageConfig
	PayRules PayRulesConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// StorageConfig holds local file storage configuration
type StorageConfig struct {
	BasePath string
	BaseURL  string
}

// PayRulesConfig holds the tunable lateness thresholds of the pay policy.
// The structural rules (rounding, caps, shift windows) are fixed in code.
type PayRulesConfig struct {
	LateGraceMorningMinutes int
	LateGraceEveningMinutes int
	LateGraceNightMinutes   int
	LateGraceCanteenMinutes int
	EarlyLeaveGraceMinutes  int
}

func Load() (*Config, error) {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", "http://localhost:3000"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
	}

	// Pay rule thresholds
	config.PayRules, err = loadPayRules()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayRules() (PayRulesConfig, error) {
	var rules PayRulesConfig
	for _, v := range []struct {
		key      string
		fallback string
		dst      *int
	}{
		{"LATE_GRACE_MORNING_MINUTES", "0", &rules.LateGraceMorningMinutes},
		{"LATE_GRACE_EVENING_MINUTES", "0", &rules.LateGraceEveningMinutes},
		{"LATE_GRACE_NIGHT_MINUTES", "30", &rules.LateGraceNightMinutes},
		{"LATE_GRACE_CANTEEN_MINUTES", "10", &rules.LateGraceCanteenMinutes},
		{"EARLY_LEAVE_GRACE_MINUTES", "15", &rules.EarlyLeaveGraceMinutes},
	} {
		n, err := strconv.Atoi(getEnv(v.key, v.fallback))
		if err != nil {
			return PayRulesConfig{}, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		if n < 0 {
			return PayRulesConfig{}, fmt.Errorf("%s cannot be negative", v.key)
		}
		*v.dst = n
	}
	return rules, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
