package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stavrosk/checkout-gate/config"
	"github.com/stavrosk/checkout-gate/internal/email"
	"github.com/stavrosk/checkout-gate/internal/health"
	"github.com/stavrosk/checkout-gate/internal/infrastructure/postgres"
	ctxlog "github.com/stavrosk/checkout-gate/internal/log"
	"github.com/stavrosk/checkout-gate/internal/metrics"
	"github.com/stavrosk/checkout-gate/internal/payment"
	"github.com/stavrosk/checkout-gate/internal/session"
	httptransport "github.com/stavrosk/checkout-gate/internal/transport/http"
	"github.com/stavrosk/checkout-gate/internal/transport/http/handler"
	"github.com/stavrosk/checkout-gate/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		stop()
		log.Fatalf("schema: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	linkRepo := postgres.NewMagicLinkRepository(pool)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	sessions := session.NewManager([]byte(cfg.SessionSecret))

	linkUsecase := usecase.NewMagicLinkUsecase(linkRepo, userRepo, sender, cfg.BaseURL)
	reconcileUsecase := usecase.NewReconcileUsecase(userRepo, purchaseRepo, linkUsecase, gateway, logger)
	accessUsecase := usecase.NewAccessUsecase(purchaseRepo)

	storeHandler := handler.NewStoreHandler(accessUsecase, reconcileUsecase, sessions, logger)
	checkoutHandler := handler.NewCheckoutHandler(gateway, userRepo, cfg.BaseURL, cfg.Currency, logger)
	webhookHandler := handler.NewWebhookHandler(reconcileUsecase, logger)
	authHandler := handler.NewAuthHandler(linkUsecase, sessions, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, sessions, storeHandler, checkoutHandler, webhookHandler, authHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
