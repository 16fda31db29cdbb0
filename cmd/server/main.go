package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cardledger/docs"
	"cardledger/internal/auth"
	"cardledger/internal/cache"
	"cardledger/internal/config"
	"cardledger/internal/db"
	"cardledger/internal/events"
	"cardledger/internal/handler"
	"cardledger/internal/logger"
	"cardledger/internal/repository"
	"cardledger/internal/router"
	"cardledger/internal/service"
)

// @title Card Ledger API
// @version 1.0
// @description Prepaid card ledger: issuance, payments, balance adjustments and audit history.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		zlog.Warn("RESET_DB=true detected, dropping ledger tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer func() { _ = cacheClient.Close() }()
		if err := cacheClient.Ping(ctx); err != nil {
			zlog.Warn("redis unreachable, card cache and token revocation degrade to no-ops", zap.Error(err))
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.Connect(cfg.NATSURL, cfg.NATSToken, cfg.NATSSubjectPrefix)
		if err != nil {
			return err
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		zlog.Info("publishing ledger events", zap.String("subject_prefix", cfg.NATSSubjectPrefix))
	}

	// Initialize services
	store := repository.NewLedgerStore(gormDB)
	ledger := service.NewLedgerService(store, service.NewSeededNumberGenerator(time.Now().UnixNano()), service.Options{
		Cache:            cacheClient,
		CacheTTL:         cfg.CardCacheTTL,
		Publisher:        publisher,
		Logger:           zlog.Named("ledger"),
		MaxIssueAttempts: cfg.IssueMaxAttempts,
	})
	tokenStore := auth.NewTokenStore(cacheClient)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(
		e,
		cfg,
		zlog.Named("http"),
		tokenStore,
		handler.NewAuthHandler(tokenStore),
		handler.NewCardHandler(ledger),
		handler.NewPaymentHandler(ledger),
		handler.NewTransactionHandler(ledger),
	)

	zlog.Info("swagger documentation available", zap.String("url", configureSwagger(cfg)))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		zlog.Info("server starting", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// configureSwagger points the served document at SWAGGER_HOST and returns the
// UI address.
func configureSwagger(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	scheme := "http"
	if strings.HasPrefix(host, "https://") {
		scheme = "https"
	}
	host = strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")

	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{scheme}
	return scheme + "://" + host + "/swagger/index.html"
}
