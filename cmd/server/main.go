package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/adboard-be/internal/config"
	"github.com/hongminglow/adboard-be/internal/credential"
	"github.com/hongminglow/adboard-be/internal/logging"
	"github.com/hongminglow/adboard-be/internal/server"
	postgres "github.com/hongminglow/adboard-be/internal/storage/postgres"
)

func main() {
	envLoaded := loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		logger.Info("no .env file found; relying on existing environment")
	}

	hasher, err := credential.NewHasher(cfg.PasswordDigest)
	if err != nil {
		logger.Error("init password hasher", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, hasher, logger)

	go func() {
		logger.Info("adboard backend listening", "addr", cfg.HTTPAddress(), "password_digest", hasher.Algorithm())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String(), "timeout", cfg.ShutdownTimeout)

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

func loadLocalEnv() bool {
	return godotenv.Load() == nil
}
