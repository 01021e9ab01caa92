package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	authcore "github.com/jenca-cloud/authcore"
	"github.com/jenca-cloud/authcore/credstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config; environment variables are used when omitted")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "authd: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Env)

	if err := run(cfg, logger); err != nil {
		logger.Error("authd exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *serverConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	signingKey, err := decodeSigningKey(cfg.Token.SigningKey, cfg.Token.SigningMethod)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	store, closeStore, err := openCredStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	coreCfg := authcore.HighSecurityConfig()
	coreCfg.Security.ProductionMode = cfg.Production
	coreCfg.Token.TTL = cfg.Token.TTL
	coreCfg.Token.Leeway = cfg.Token.Leeway
	coreCfg.Token.SigningMethod = cfg.Token.SigningMethod
	coreCfg.Token.SigningKey = signingKey
	coreCfg.Token.KeyID = cfg.Token.KeyID
	coreCfg.Token.Issuer = cfg.Token.Issuer
	coreCfg.Audit.Enabled = cfg.Audit.Enabled
	coreCfg.Audit.BufferSize = cfg.Audit.BufferSize
	coreCfg.Audit.DropIfFull = cfg.Audit.DropIfFull

	for _, w := range coreCfg.Lint() {
		logger.Warn("config lint finding", "code", w.Code, "severity", w.Severity.String(), "detail", w.Message)
	}

	engine, err := authcore.New().
		WithConfig(coreCfg).
		WithRedis(rdb).
		WithCredentialStore(store).
		WithAuditSink(authcore.NewJSONWriterSink(os.Stdout)).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      newHandler(engine, logger),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("authd listening", "address", cfg.HTTPServer.Address, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

func openCredStore(ctx context.Context, cfg *serverConfig, logger *slog.Logger) (credstore.Store, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warn("using in-memory credential store; accounts are lost on restart")
		return credstore.NewMemoryStore(), func() {}, nil
	case "postgres":
		store, err := credstore.NewPostgresStore(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func decodeSigningKey(encoded, method string) ([]byte, error) {
	if method == "hs256" {
		return []byte(encoded), nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("signing key must be base64 for %s: %w", method, err)
	}
	return key, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
