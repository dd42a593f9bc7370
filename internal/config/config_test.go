package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "JWT_SECRET", "JWT_EXPIRATION_HOURS",
	"CHAT_PROVIDER", "CHAT_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY",
	"CHAT_MAX_OUTPUT_TOKENS", "CHAT_TEMPERATURE", "CHAT_MAX_DURATION_SECONDS",
	"GEMINI_API_KEY", "INSIGHT_MODEL", "INSIGHT_BASE_URL", "INSIGHT_MAX_ATTEMPTS", "INSIGHT_BASE_DELAY_MS",
	"DATABASE_URL", "SQLITE_PATH", "DASHBOARD_DATA_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "openai", cfg.ChatProvider)
	assert.Equal(t, "gpt-5-mini", cfg.ChatModel)
	assert.Equal(t, 500, cfg.ChatMaxOutputTokens)
	assert.Equal(t, 0.7, cfg.ChatTemperature)
	assert.Equal(t, 30*time.Second, cfg.ChatMaxDuration)
	assert.Equal(t, 3, cfg.InsightMaxAttempts)
	assert.Equal(t, time.Second, cfg.InsightBaseDelay)
	assert.Equal(t, DataSourceFiles, cfg.DataSource)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INSIGHT_BASE_DELAY_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SQLITE_PATH", "/tmp/dash.db")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.ChatProvider)
	assert.Equal(t, "sk-ant", cfg.ChatAPIKey())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.InsightBaseDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, DataSourceSQLite, cfg.DataSource)
}

func TestFromEnv_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/dash")
	t.Setenv("SQLITE_PATH", "/tmp/dash.db")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DataSourcePostgres, cfg.DataSource)
}

func TestFromEnv_ReportsEveryInvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_PROVIDER", "cohere")
	t.Setenv("CHAT_TEMPERATURE", "hot")
	t.Setenv("INSIGHT_MAX_ATTEMPTS", "0")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorContains(t, err, "CHAT_PROVIDER")
	assert.ErrorContains(t, err, "CHAT_TEMPERATURE")
	assert.ErrorContains(t, err, "INSIGHT_MAX_ATTEMPTS")
}
