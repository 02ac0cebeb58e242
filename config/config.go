package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firebase  FirebaseConfig
	Gemini    GeminiConfig
	Workflow  WorkflowConfig
	Retention RetentionConfig
	Admin     AdminConfig
	App       AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

type GeminiConfig struct {
	APIKey    string
	Model     string
	RateLimit float64
	Burst     int
}

type WorkflowConfig struct {
	OracleTimeout    time.Duration
	InFlightTTL      time.Duration
	StrictExtraction bool
	SignOperator     string
	SignTitle        string
}

type RetentionConfig struct {
	Enabled bool
	Cron    string
	Days    int
	Batch   int
}

type AdminConfig struct {
	Emails []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogSalt     string
	Version     string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 1),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Gemini: GeminiConfig{
			APIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			RateLimit: getEnvAsFloat("GEMINI_RATE_LIMIT", 2),
			Burst:     getEnvAsInt("GEMINI_BURST", 4),
		},
		Workflow: WorkflowConfig{
			OracleTimeout:    getEnvAsDuration("WORKFLOW_ORACLE_TIMEOUT", 120*time.Second),
			InFlightTTL:      getEnvAsDuration("WORKFLOW_INFLIGHT_TTL", 5*time.Minute),
			StrictExtraction: getEnvAsBool("WORKFLOW_STRICT_EXTRACTION", false),
			SignOperator:     getEnv("SIGN_OPERATOR", ""),
			SignTitle:        getEnv("SIGN_TITLE", ""),
		},
		Retention: RetentionConfig{
			Enabled: getEnvAsBool("RETENTION_ENABLED", true),
			Cron:    getEnv("RETENTION_CRON", "0 0 3 * * *"),
			Days:    getEnvAsInt("RETENTION_DAYS", 30),
			Batch:   getEnvAsInt("RETENTION_BATCH", 100),
		},
		Admin: AdminConfig{
			Emails: getEnvAsList("ADMIN_EMAILS", nil),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogSalt:     getEnv("LOG_HASH_SALT", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.App.IsProduction() {
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required in production")
		}
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required in production")
		}
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required in production")
		}
	}

	if c.Workflow.OracleTimeout <= 0 {
		return fmt.Errorf("WORKFLOW_ORACLE_TIMEOUT must be positive")
	}
	if c.Workflow.InFlightTTL < c.Workflow.OracleTimeout {
		return fmt.Errorf("WORKFLOW_INFLIGHT_TTL (%s) must not be shorter than WORKFLOW_ORACLE_TIMEOUT (%s)", c.Workflow.InFlightTTL, c.Workflow.OracleTimeout)
	}
	if c.Retention.Days <= 0 {
		return fmt.Errorf("RETENTION_DAYS must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
