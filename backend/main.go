package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(config Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(config.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func runServe(cmd *cobra.Command, args []string) error {
	config := GetConfig()
	server := NewServer(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.hub.Run(ctx.Done())
	go server.RunTicker(ctx, config.TickInterval())

	httpServer := &http.Server{
		Addr:    config.ListenAddr,
		Handler: server.Routes(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger := slog.With("component", "backend")
	logger.Info("backend listening", "addr", config.ListenAddr)
	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received", "reason", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			logger.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("graceful shutdown failed", "error", err)
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Warn("forced close failed", "error", closeErr)
		}
	}
	cancel()
	return runErr
}
