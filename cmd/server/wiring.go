package main

import (
	"bizdash-backend/internal/config"
	"bizdash-backend/internal/llm"
	"bizdash-backend/internal/services"
	"bizdash-backend/internal/store"
	"bizdash-backend/internal/store/file"
	"bizdash-backend/internal/store/postgres"
	"bizdash-backend/internal/store/sqlite"
	"context"
	"fmt"
	"log/slog"
	"os"
)

func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

// openStore opens the configured dashboard data source.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.DashboardStore, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		return postgres.Open(ctx, cfg.DatabaseURL, logger)
	case config.DataSourceSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, logger)
	case config.DataSourceFiles:
		return file.NewFileStore(cfg.DataDir), nil
	}
	return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
}

// newChatService returns nil when the chat provider cannot be built, e.g.
// because its API key is missing.
func newChatService(cfg *config.Config, logger *slog.Logger) *services.ChatService {
	registry := llm.NewDefaultRegistry(logger)
	provider, err := registry.Build(cfg.ChatProvider, llm.ProviderSettings{
		APIKey:  cfg.ChatAPIKey(),
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		logger.Warn("chat provider unavailable, chat relay disabled", "provider", cfg.ChatProvider, "error", err)
		return nil
	}
	return services.NewChatService(provider, services.ChatServiceConfig{
		SystemPrompt:    services.BusinessAnalystPrompt,
		MaxOutputTokens: cfg.ChatMaxOutputTokens,
		Temperature:     cfg.ChatTemperature,
	}, logger)
}

// newInsightService always returns a service; without a Gemini key every
// request resolves to the fallback text.
func newInsightService(ctx context.Context, cfg *config.Config, logger *slog.Logger) *services.InsightService {
	var generator llm.TextGenerator
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, insights will use the fallback message")
	} else {
		g, err := llm.NewGeminiTextGenerator(ctx, cfg.GeminiAPIKey, cfg.InsightModel, cfg.InsightBaseURL)
		if err != nil {
			logger.Warn("insight provider unavailable", "error", err)
		} else {
			generator = g
		}
	}
	return services.NewInsightService(generator, services.InsightServiceConfig{
		MaxAttempts: cfg.InsightMaxAttempts,
		BaseDelay:   cfg.InsightBaseDelay,
	}, logger)
}
