// cmd/customer-generator/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"customer-generator/internal/common/config"
	"customer-generator/internal/common/errors"
	commonhttp "customer-generator/internal/common/http"
	"customer-generator/internal/common/logger"
	"customer-generator/internal/common/observability"
	"customer-generator/internal/customers"
	"customer-generator/internal/generator"
	"customer-generator/internal/workflow"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return 1
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	count, err := parseCount(args, cfg.Generator.DefaultCount)
	if err != nil {
		zapLog.Warn("Invalid customer count, using default",
			zap.Error(err),
			zap.Int("defaultCount", cfg.Generator.DefaultCount),
		)
	}

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		TracingEnabled: cfg.Tracing.Enabled,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
	})
	if err != nil {
		zapLog.Error("observability setup failed", zap.Error(err))
		return 1
	}
	defer obs.Shutdown(context.Background())

	api, err := customers.NewClient(cfg.Target, commonhttp.NewClient(config.GetDuration(cfg.HTTP.Timeout)))
	if err != nil {
		zapLog.Error("customer client setup failed", zap.Error(err))
		return 1
	}

	svc, err := workflow.NewService(workflow.ServiceDependencies{
		Logger:        log,
		Generator:     generator.New(cfg.Generator.Seed),
		API:           api,
		Observability: obs,
	}, workflow.ConfigFromApp(cfg))
	if err != nil {
		zapLog.Error("workflow setup failed", zap.Error(err))
		return 1
	}

	if cfg.Metrics.Enabled {
		srv := startMetricsServer(cfg.Metrics.Address, zapLog)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLog.Info("Generating customers",
		zap.String("target", api.CustomersURL()),
		zap.Int("count", count),
		zap.String("failurePolicy", cfg.Generator.FailurePolicy),
	)

	report, err := svc.Run(ctx, count)
	if report != nil {
		zapLog.Info("Run summary",
			zap.String("runId", report.RunID),
			zap.Int("requested", report.Requested),
			zap.Int("created", report.Created()),
			zap.Int("completed", report.Completed()),
			zap.Int("failed", len(report.Failures())),
			zap.Duration("duration", report.Duration),
		)
	}
	if err != nil {
		zapLog.Error("Customer generation failed",
			zap.Error(err),
			zap.String("errorCode", errors.ExtractErrorCode(err)),
			zap.String("stage", string(errors.ExtractStage(err))),
		)
		return 1
	}
	return 0
}

// parseCount reads the customer count from the first argument. A missing,
// non-numeric or negative argument yields def together with the reason.
func parseCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return def, errors.NewInvalidCustomerCountError(args[0], err)
	}
	if n < 0 {
		return def, errors.NewInvalidCustomerCountError(args[0], nil)
	}
	return n, nil
}

func startMetricsServer(addr string, zapLog *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = jsoniter.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Metrics server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
