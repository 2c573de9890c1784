package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/config"
	"github.com/plateful/dishq/internal/db"
	dbRedis "github.com/plateful/dishq/internal/db/redis"
	logpkg "github.com/plateful/dishq/internal/logger"
	"github.com/plateful/dishq/internal/metrics"
	chiTransport "github.com/plateful/dishq/internal/transport/chi"
	openaiTransport "github.com/plateful/dishq/internal/transport/openai"
	healthuc "github.com/plateful/dishq/internal/usecase/health"
	"github.com/plateful/dishq/internal/usecase/ratelimit"
	translationuc "github.com/plateful/dishq/internal/usecase/translation"
	"github.com/plateful/dishq/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dishq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("ratelimit_backend", cfg.RateLimit.Backend),
		zap.Int("ratelimit_limit", cfg.RateLimit.Limit),
	)

	// Register translation metrics explicitly (no init())
	metrics.RegisterTranslationMetrics()

	window := time.Duration(cfg.RateLimit.WindowSec) * time.Second

	// Server-side limiter — the authoritative quota check.
	var limiter ratelimit.Limiter
	var store db.Store
	switch cfg.RateLimit.Backend {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.RateLimit.Addrs,
			Password: cfg.RateLimit.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create counter store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.RateLimit.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Counter store not ready", zap.Error(err))
		}
		logger.Info("Connected to counter store")

		limiter = ratelimit.NewStore(store, cfg.RateLimit.Limit, window, logger)
	case "memory":
		limiter = ratelimit.NewMemory(cfg.RateLimit.Limit, window)
	default:
		logger.Fatal("Unknown rate limit backend", zap.String("backend", cfg.RateLimit.Backend))
	}

	openaiCfg := &openaiTransport.Config{
		APIKey:          cfg.OpenAI.APIKey,
		BaseURL:         cfg.OpenAI.BaseURL,
		Model:           cfg.OpenAI.Model,
		ModerationModel: cfg.OpenAI.ModerationModel,
		Timeout:         time.Duration(cfg.OpenAI.TimeoutSec) * time.Second,
		Logger:          logger,
	}
	moderator := openaiTransport.NewModerator(openaiCfg)
	translator := openaiTransport.NewTranslator(openaiCfg)
	logger.Info("Upstream capability configured",
		zap.String("model", cfg.OpenAI.Model),
		zap.String("moderation_model", cfg.OpenAI.ModerationModel),
		zap.Int("timeout_sec", cfg.OpenAI.TimeoutSec),
	)

	translationSvc := translationuc.New(
		limiter, moderator, translator, cfg.Translation.MaxInputChars, logger,
	)

	// Health service — store is nil for the memory backend.
	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(pinger, translator)

	server := chiTransport.NewServer(translationSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
