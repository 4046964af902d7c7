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

	"github.com/kailas-cloud/tastegraph/internal/config"
	logpkg "github.com/kailas-cloud/tastegraph/internal/logger"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
	chiTransport "github.com/kailas-cloud/tastegraph/internal/transport/chi"
	openaiNarrator "github.com/kailas-cloud/tastegraph/internal/transport/openai"
	"github.com/kailas-cloud/tastegraph/internal/transport/tastegraph"
	componentuc "github.com/kailas-cloud/tastegraph/internal/usecase/component"
	crossdomainuc "github.com/kailas-cloud/tastegraph/internal/usecase/crossdomain"
	goaluc "github.com/kailas-cloud/tastegraph/internal/usecase/goal"
	healthuc "github.com/kailas-cloud/tastegraph/internal/usecase/health"
	insightuc "github.com/kailas-cloud/tastegraph/internal/usecase/insight"
	resolveuc "github.com/kailas-cloud/tastegraph/internal/usecase/resolve"
	"github.com/kailas-cloud/tastegraph/internal/version"
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

	logger.Info("Starting tastegraph API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("tastegraph_url", cfg.TasteGraph.BaseURL),
		zap.String("bridge_source", cfg.TasteGraph.BridgeSource),
		zap.String("trending_source", cfg.TasteGraph.TrendingSource),
		zap.Bool("narrator", cfg.Narrator.Enabled()),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterUpstreamMetrics()

	gateway := tastegraph.New(&tastegraph.Config{
		BaseURL: cfg.TasteGraph.BaseURL,
		APIKey:  cfg.TasteGraph.APIKey,
		Logger:  logger,
	})

	// Pass nil interfaces (not typed nil pointers) when the narrator is disabled.
	var (
		narrator        goaluc.Narrator
		narratorChecker healthuc.NarratorChecker
	)
	if cfg.Narrator.Enabled() {
		metrics.RegisterNarratorMetrics()
		n := openaiNarrator.NewNarrator(&openaiNarrator.Config{
			APIKey:    cfg.Narrator.APIKey,
			BaseURL:   cfg.Narrator.BaseURL,
			Model:     cfg.Narrator.Model,
			MaxTokens: cfg.Narrator.MaxTokens,
			Provider:  cfg.Narrator.Provider,
			Logger:    logger,
		})
		narrator, narratorChecker = n, n
		logger.Info("Narrator enabled",
			zap.String("provider", cfg.Narrator.Provider),
			zap.String("model", cfg.Narrator.Model),
		)
	}

	// Use case services
	resolveSvc := resolveuc.New(gateway, cfg.TasteGraph.ResolveTake)
	insightSvc := insightuc.New(gateway, cfg.TasteGraph.InsightTake, cfg.TasteGraph.Concurrency)
	goalSvc := goaluc.New(resolveSvc, insightSvc, narrator)
	componentSvc := componentuc.New(resolveSvc, gateway, cfg.TasteGraph.InsightTake)
	discoverySvc := crossdomainuc.New(resolveSvc, gateway, crossdomainuc.Config{
		DefaultLocation: cfg.TasteGraph.DefaultLocation,
		Take:            cfg.TasteGraph.InsightTake,
		Bridges:         buildBridgeSource(cfg.TasteGraph, gateway),
		Trending:        buildTrendingSource(cfg.TasteGraph, gateway),
	})
	healthSvc := healthuc.New(gateway, narratorChecker)

	server := chiTransport.NewServer(goalSvc, componentSvc, discoverySvc, gateway, healthSvc)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.CORSMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.RequestTimeoutMiddleware(time.Duration(cfg.HTTP.RequestTimeoutSec) * time.Second))
	server.Routes(r)

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

func buildBridgeSource(cfg config.TasteGraphConfig, gateway *tastegraph.Client) crossdomainuc.BridgeSource {
	if cfg.BridgeSource == config.BridgeSourceCompare {
		return crossdomainuc.NewCompareBridgeSource(gateway, cfg.InsightTake)
	}
	return crossdomainuc.SyntheticBridges{}
}

func buildTrendingSource(cfg config.TasteGraphConfig, gateway *tastegraph.Client) crossdomainuc.TrendingSource {
	if cfg.TrendingSource == config.TrendingSourceUpstream {
		return crossdomainuc.NewUpstreamTrending(gateway, cfg.TrendingTake)
	}
	return crossdomainuc.NoTrending{}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
