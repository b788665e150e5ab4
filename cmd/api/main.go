package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/api"
	"github.com/cyberfanta/shopping-exercise/internal/cache"
	"github.com/cyberfanta/shopping-exercise/internal/config"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/cyberfanta/shopping-exercise/internal/middleware"
	"github.com/cyberfanta/shopping-exercise/internal/migrations"
	"github.com/cyberfanta/shopping-exercise/internal/notify"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/cyberfanta/shopping-exercise/internal/repository"
	"github.com/cyberfanta/shopping-exercise/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

type notifier interface {
	port.OrderNotifier
	port.PasswordResetNotifier
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := newPool(startCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(startCtx, pool); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		log.Info("database migrations applied")
	}

	var categoryCache port.CategoryCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(startCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("cache.NewClient: %w", err)
		}
		defer func() { _ = client.Close() }()

		categoryCache = cache.NewCategoryCache(client, cfg.Redis.CategoryCacheTTL)
		log.Info("category cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var mail notifier = notify.NewLogNotifier(log)
	if cfg.SMTP.Enabled() {
		mail = notify.NewMailer(cfg.SMTP)
	} else {
		log.Warn("SMTP is not configured, emails are logged instead of sent")
	}

	store := repository.NewStore(pool)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	orders := service.NewOrderService(store, service.NewSimulatedGateway(cfg.Shop.PaymentSuccessRate), mail, log, cfg.Shop.Currency)
	auth := service.NewAuthService(store, tokens, mail, log, cfg.Shop.FrontendURL)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.PerMinute(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst)
	}

	router := api.NewRouter(api.Services{
		Auth:    auth,
		Catalog: service.NewCatalogService(store, categoryCache, log),
		Carts:   service.NewCartService(store, cfg.Shop.Currency),
		Orders:  orders,
		Admin:   service.NewAdminService(store, orders, log),
		Users:   service.NewUserService(store, cfg.Shop.SuperadminEmail),
	}, api.Options{
		Log:            log,
		Tokens:         tokens,
		DB:             pool,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    limiter,
	})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	// in-flight emails finish before the pool closes
	orders.Wait()
	auth.Wait()

	log.Info("server stopped")
	return nil
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}
