// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/database"
	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/observability"
	"restaurant-workers/internal/ranking"
	"restaurant-workers/pkg/registry"

	ltg "restaurant-workers/internal/workers/restaurants/list-tag-groups"
	pfc "restaurant-workers/internal/workers/restaurants/parse-filter-criteria"
	rr "restaurant-workers/internal/workers/restaurants/rank-restaurants"
	rl "restaurant-workers/internal/workers/restaurants/resolve-location"
	ufs "restaurant-workers/internal/workers/restaurants/update-filter-set"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("rankingOrder", cfg.RankingOrder().String()),
	)

	spanProcessors, err := observability.NewSpanProcessors(cfg.Tracing.Exporter, os.Stdout)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	obs := observability.New(observability.Config{
		ServiceName:    cfg.App.Name,
		SpanProcessors: spanProcessors,
	}, log)
	defer obs.Shutdown()

	// --- Catalog ---
	cat, err := catalog.Default()
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(commonerrors.NewCatalogLoadFailedError(err)))
	}
	engine := ranking.NewEngine(cat, cfg.RankingOrder())
	zapLog.Info("Catalog loaded",
		zap.String("version", cat.Version()),
		zap.Int("restaurants", cat.Len()),
	)

	activities, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init Redis with retry ---
	// The cache is optional; rankings are recomputed without it.
	var cache rr.Cache
	if cfg.Redis.Enabled() {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := redis.Ping(ctx); err != nil {
				_ = redis.Close()
				return err
			}
			return nil
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, ranking cache disabled", zap.Error(err))
		} else {
			defer redis.Close()
			cache = redis
			zapLog.Info("Redis connected successfully")
		}
	} else {
		zapLog.Info("redis not configured, ranking cache disabled")
	}

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler camunda.JobHandler) {
		if _, ok := activities.Lookup(taskType); !ok {
			zapLog.Fatal("worker has no registry entry", zap.String("taskType", taskType))
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		w := camunda.NewWorker(zeebeClient.GetClient(), camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, obs, log)
		w.Start()
		workers = append(workers, w)
	}

	if config.IsWorkerEnabled(cfg, pfc.TaskType) {
		register(pfc.TaskType, pfc.NewHandler(pfc.LoadConfig(cfg), log))
	}
	if config.IsWorkerEnabled(cfg, ufs.TaskType) {
		register(ufs.TaskType, ufs.NewHandler(ufs.LoadConfig(cfg), log))
	}
	if config.IsWorkerEnabled(cfg, rr.TaskType) {
		register(rr.TaskType, rr.NewHandler(rr.LoadConfig(cfg), engine, cache, log))
	}
	if config.IsWorkerEnabled(cfg, rl.TaskType) {
		register(rl.TaskType, rl.NewHandler(rl.LoadConfig(cfg), log))
	}
	if config.IsWorkerEnabled(cfg, ltg.TaskType) {
		register(ltg.TaskType, ltg.NewHandler(ltg.LoadConfig(cfg), log))
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	var server *http.Server
	if cfg.Metrics.Enabled {
		server = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           newMux(zeebeClient, cat),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
		}
	}

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func newMux(zeebeClient *camunda.Client, cat *catalog.Catalog) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status":         "healthy",
			"catalogVersion": cat.Version(),
			"time":           time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebeClient.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
