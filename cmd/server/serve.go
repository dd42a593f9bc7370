package main

import (
	"bizdash-backend/internal/api"
	"bizdash-backend/internal/config"
	"bizdash-backend/internal/handlers"
	"bizdash-backend/internal/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)
	logger.Info("starting bizdash backend", "port", cfg.HTTPPort, "data_source", cfg.DataSource, "chat_provider", cfg.ChatProvider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loadCtx, loadCancel := context.WithTimeout(ctx, 10*time.Second)
	defer loadCancel()

	st, err := openStore(loadCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open dashboard store: %w", err)
	}
	defer st.Close()

	dashboardService, err := services.LoadDashboardService(loadCtx, st, logger)
	if err != nil {
		return err
	}
	projectionService := services.NewProjectionService(dashboardService.FinancialBase())
	insightService := newInsightService(ctx, cfg, logger)

	deps := api.RouterDependencies{
		ProjectionHandler: handlers.NewProjectionHandlers(projectionService, insightService, logger),
		DashboardHandler:  handlers.NewDashboardHandlers(dashboardService),
		Config:            cfg,
		Logger:            logger,
	}
	if chatService := newChatService(cfg, logger); chatService != nil {
		deps.ChatHandler = handlers.NewChatHandlers(chatService, logger)
	}

	server := &http.Server{
		Addr:        ":" + cfg.HTTPPort,
		Handler:     api.NewRouter(deps),
		ReadTimeout: 5 * time.Second,
		// Must outlive the chat stream deadline so timeouts reach the client as stream errors.
		WriteTimeout: cfg.ChatMaxDuration + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("could not listen on %s: %w", server.Addr, err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, initiating graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}
