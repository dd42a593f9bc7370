package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DataSource selects where the dashboard datasets are read from.
type DataSource string

const (
	DataSourcePostgres DataSource = "postgres"
	DataSourceSQLite   DataSource = "sqlite"
	DataSourceFiles    DataSource = "files"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort           string
	CORSAllowedOrigins []string
	LogLevel           slog.Level

	// JWTSecret is optional; when set the /v1 routes require a bearer token.
	JWTSecret       string
	TokenExpiration time.Duration

	ChatProvider        string
	ChatModel           string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	AnthropicAPIKey     string
	ChatMaxOutputTokens int
	ChatTemperature     float64
	ChatMaxDuration     time.Duration

	GeminiAPIKey       string
	InsightModel       string
	InsightBaseURL     string
	InsightMaxAttempts int
	InsightBaseDelay   time.Duration

	DataSource  DataSource
	DatabaseURL string
	SQLitePath  string
	DataDir     string
}

// ChatAPIKey returns the key of the configured chat provider.
func (c *Config) ChatAPIKey() string {
	switch c.ChatProvider {
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var errs []error
	p := &parser{errs: &errs}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,https://*.vercel.app")),
		LogLevel:           p.level("LOG_LEVEL", slog.LevelInfo),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(p.int("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		ChatProvider:        strings.ToLower(getEnv("CHAT_PROVIDER", "openai")),
		ChatModel:           getEnv("CHAT_MODEL", "gpt-5-mini"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		ChatMaxOutputTokens: p.int("CHAT_MAX_OUTPUT_TOKENS", 500),
		ChatTemperature:     p.float("CHAT_TEMPERATURE", 0.7),
		ChatMaxDuration:     time.Duration(p.int("CHAT_MAX_DURATION_SECONDS", 30)) * time.Second,

		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		InsightModel:       getEnv("INSIGHT_MODEL", "gemini-2.0-flash"),
		InsightBaseURL:     getEnv("INSIGHT_BASE_URL", ""),
		InsightMaxAttempts: p.int("INSIGHT_MAX_ATTEMPTS", 3),
		InsightBaseDelay:   time.Duration(p.int("INSIGHT_BASE_DELAY_MS", 1000)) * time.Millisecond,

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),
		DataDir:     getEnv("DASHBOARD_DATA_DIR", "./data"),
	}

	switch {
	case cfg.DatabaseURL != "":
		cfg.DataSource = DataSourcePostgres
	case cfg.SQLitePath != "":
		cfg.DataSource = DataSourceSQLite
	default:
		cfg.DataSource = DataSourceFiles
	}

	if cfg.ChatProvider != "openai" && cfg.ChatProvider != "anthropic" {
		errs = append(errs, fmt.Errorf("CHAT_PROVIDER must be openai or anthropic, got %q", cfg.ChatProvider))
	}
	if cfg.ChatMaxOutputTokens <= 0 {
		errs = append(errs, errors.New("CHAT_MAX_OUTPUT_TOKENS must be positive"))
	}
	if cfg.ChatTemperature < 0 || cfg.ChatTemperature > 2 {
		errs = append(errs, errors.New("CHAT_TEMPERATURE must be between 0 and 2"))
	}
	if cfg.ChatMaxDuration <= 0 {
		errs = append(errs, errors.New("CHAT_MAX_DURATION_SECONDS must be positive"))
	}
	if cfg.InsightMaxAttempts < 1 {
		errs = append(errs, errors.New("INSIGHT_MAX_ATTEMPTS must be at least 1"))
	}
	if cfg.InsightBaseDelay < 0 {
		errs = append(errs, errors.New("INSIGHT_BASE_DELAY_MS must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects conversion errors so every bad variable is reported at once.
type parser struct {
	errs *[]error
}

func (p *parser) int(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return fallback
	}
	return v
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return fallback
	}
	return v
}

func (p *parser) level(key string, fallback slog.Level) slog.Level {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return fallback
	}
	return lvl
}
