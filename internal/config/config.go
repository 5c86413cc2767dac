package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (sqlite or pgx)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
	// TrustProxy honours X-Forwarded-For and X-Real-IP; enable only behind a proxy that sets them.
	TrustProxy bool

	// Text generation (OpenAI-compatible, optional)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Avatar storage (S3-compatible, optional)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "GoalMaster"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8000"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goalmaster.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret:      envString("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:      time.Duration(envInt("JWT_EXPIRE_MINUTES", 30)) * time.Minute,
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:3001"}),
		TrustProxy:     envBool("TRUST_PROXY", false),

		// An empty key disables the external call; every advisory answer then comes from templates.
		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout: envDuration("OPENAI_TIMEOUT", 10*time.Second),

		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses to start a production deployment with development-only settings.
func validateProduction(cfg *Config) {
	if cfg.JWTSecret == defaultJWTSecret {
		slog.Error("production deployment requires a non-default JWT_SECRET")
		os.Exit(1)
	}
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LLMEnabled reports whether the external text-generation client should be built.
func (c *Config) LLMEnabled() bool {
	return c.OpenAIAPIKey != "" && !envBool("OPENAI_DISABLED", false)
}

// StorageEnabled reports whether avatar uploads have a bucket to write to.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}
