package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/tarzi-cart/internal/cart"
	"github.com/nikolayk812/tarzi-cart/internal/checkout"
	"github.com/nikolayk812/tarzi-cart/internal/config"
	"github.com/nikolayk812/tarzi-cart/internal/httpx"
	"github.com/nikolayk812/tarzi-cart/internal/logger"
	"github.com/nikolayk812/tarzi-cart/internal/orderapi"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"github.com/nikolayk812/tarzi-cart/internal/repository"
	"github.com/nikolayk812/tarzi-cart/internal/session"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("cartd stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service:   "cartd",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: cfg.AppEnv != "production",
	})

	if cfg.DotEnvMissing {
		log.Warn("no .env file found, using process environment only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStore: %w", err)
	}
	defer closeStore()
	log.Info("cart store ready", slog.String("kind", cfg.CartStore))

	engine := cart.NewEngine(store, cart.Options{
		Shipping: cfg.Shipping(),
		TaxRate:  cfg.TaxRate,
		Currency: cfg.Currency,
		Logger:   log,
	})
	orders := orderapi.New(cfg.OrderAPIURL, cfg.OrderAPITimeout, orderapi.Retry{
		MaxRetries:      uint64(cfg.OrderAPIRetries),
		InitialInterval: cfg.OrderAPIRetryInterval,
	})
	checkoutSvc := checkout.NewService(engine, orders, log)

	handler := httpx.NewHandler(engine, checkoutSvc, log)
	router := httpx.NewRouter(handler, httpx.Authenticate(session.NewVerifier(cfg.JWTSecret)))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("bye")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (port.CartStore, func(), error) {
	switch cfg.CartStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}

		return repository.NewCart(pool), pool.Close, nil

	case config.StoreRedis:
		opts := &redis.Options{Addr: cfg.RedisAddr}
		if cfg.RedisURL != "" {
			parsed, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return nil, nil, fmt.Errorf("redis.ParseURL: %w", err)
			}
			opts = parsed
		}

		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}

		return repository.NewRedisCart(client, cfg.Currency, cfg.CartTTL), func() { _ = client.Close() }, nil

	default:
		store, err := repository.NewFileCart(cfg.CartDir, cfg.Currency)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFileCart: %w", err)
		}

		return store, func() {}, nil
	}
}
