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

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/config"
	"github.com/flicky/club-eskimo-web/internal/handler"
	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/repository"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
	"github.com/flicky/club-eskimo-web/internal/telemetry"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(cfg.Telemetry, os.Stderr)
	if err != nil {
		log.Error("setup telemetry", "error", err)
		os.Exit(1)
	}

	// Sessions
	secret := []byte(cfg.Session.Secret)
	var (
		sessionBackend sessions.Store
		// readiness stays nil unless sessions live in Redis.
		readiness redis.Cmdable
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("connected to Redis")
		readiness = redisClient
		sessionBackend = session.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, secret, cfg.Session.MaxAge, cfg.Session.Secure)
	default:
		sessionBackend = session.NewCookieStore(secret, cfg.Session.MaxAge, cfg.Session.Secure)
	}
	store := session.NewStore(sessionBackend, cfg.Session.Name)

	// Backend API
	api, err := apiclient.New(cfg.Backend.BaseURL, apiclient.NewHTTPClient(cfg.Backend.Timeout), log)
	if err != nil {
		log.Error("create backend client", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(api)
	productRepo := repository.NewProductRepository(api)
	cartRepo := repository.NewCartRepository(api)
	orderRepo := repository.NewOrderRepository(api)
	adminRepo := repository.NewAdminRepository(api)

	// Services
	authSvc := service.NewAuthService(userRepo, log)
	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo)
	adminSvc := service.NewAdminService(adminRepo)

	// Handlers
	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, store, log),
		Product: handler.NewProductHandler(productSvc, cartSvc, store, log),
		Cart:    handler.NewCartHandler(cartSvc, store, log),
		Order:   handler.NewOrderHandler(orderSvc, store, log),
		Admin:   handler.NewAdminHandler(adminSvc, store, log, cfg.Server.MaxUploadSize),
		Health:  handler.NewHealthHandler(readiness),
	}

	gin.SetMode(gin.ReleaseMode)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	router, err := handler.NewRouter(handlers, store, limiter, log)
	if err != nil {
		log.Error("build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(router, cfg.Telemetry.ServiceName),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port, "backend", cfg.Backend.BaseURL, "sessions", cfg.Session.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("telemetry shutdown", "error", err)
	}
	cancel()
	log.Info("server stopped")
}
