package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/transport"
	"storefront-be/internal/user"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	limiterSweep    = time.Minute
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
	limiter := middleware.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler, err := newServer(cfg, database, publisher, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		logger.L().Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.Strings("services", cfg.Services),
		)
		if err := startServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return limiter.Cleanup(ctx, limiterSweep)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.L().Info("shutting down")

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()

		err := srv.Shutdown(shutdownCtx)
		if cerr := publisher.Close(); cerr != nil {
			logger.L().Warn("failed to close event publisher", zap.Error(cerr))
		}
		return err
	})

	return g.Wait()
}

// newServer wires repositories, services and the HTTP handler for the
// services enabled in cfg.
func newServer(cfg *config.Config, database *sql.DB, publisher events.Publisher, limiter *middleware.Limiter) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlg, cfg.JWTExpiresIn)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	productRepo := product.NewRepository(database)

	userSvc := user.NewService(user.NewRepository(database), tokens)
	categorySvc := category.NewService(category.NewRepository(database))
	productSvc := product.NewService(productRepo)
	cartSvc := cart.NewService(cart.NewRepository(database), productRepo, m)
	orderSvc := order.NewService(order.NewRepository(database), publisher, m)

	return transport.NewHandler(transport.Deps{
		Config:     cfg,
		Users:      userSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Carts:      cartSvc,
		Orders:     orderSvc,
		Metrics:    m,
		Limiter:    limiter,
	}), nil
}
