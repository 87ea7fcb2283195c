// Command apiserver runs the ChemDesc-Engine HTTP and gRPC servers.  It
// serves synchronous descriptor computation on /api/v1 and enqueues
// asynchronous jobs onto Kafka for the worker fleet.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/config"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	grpcserver "github.com/turtacn/ChemDesc-Engine/internal/interfaces/grpc"
	httpserver "github.com/turtacn/ChemDesc-Engine/internal/interfaces/http"
	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/middleware"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// Populated at build time via -ldflags.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (empty: env/defaults)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting api server",
		logging.String("version", version),
		logging.String("environment", cfg.App.Environment),
		logging.String("http_addr", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)),
		logging.String("grpc_addr", fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)),
	)

	var appMetrics *prometheus.AppMetrics
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return err
		}
		appMetrics = prometheus.NewAppMetrics(collector)
		metricsHandler = collector.Handler()
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Acks:         "all",
		MaxRetries:   cfg.Kafka.ProducerRetries,
		BatchTimeout: cfg.Kafka.BatchTimeout,
	}, logger, appMetrics)
	if err != nil {
		return err
	}
	defer producer.Close()

	service := compute.NewService(compute.Config{
		MaxBatchSize:      cfg.Compute.MaxBatchSize,
		MaxAtoms:          cfg.Compute.MaxAtoms,
		FingerprintSize:   cfg.Compute.FingerprintSize,
		FingerprintDepth:  cfg.Compute.FingerprintDepth,
		EnvironmentRadius: cfg.Compute.EnvironmentRadius,
	}, logger, appMetrics)

	health := handlers.NewHealthHandler(handlers.VersionInfo{
		Name:      cfg.App.Name,
		Version:   version,
		GoVersion: runtime.Version(),
		BuildTime: buildDate,
	}, brokerCheck(cfg.Kafka.Brokers))

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:           cfg.HTTP.Mode,
		Logger:         logger,
		Metrics:        appMetrics,
		MetricsHandler: metricsHandler,
		CORS:           middleware.DefaultCORSConfig(),
		Descriptors:    handlers.NewDescriptorHandler(service, logger),
		Jobs:           handlers.NewJobHandler(producer, logger, cfg.App.Name),
		Health:         health,
	})

	httpSrv := httpserver.NewServer(cfg.HTTP, router, logger)
	grpcSrv, err := grpcserver.NewServer(cfg.GRPC, cfg.App, logger, appMetrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() { errCh <- httpSrv.Start() }()
	go func() { errCh <- grpcSrv.Start() }()
	grpcSrv.SetServing("chemdesc.api", true)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", logging.Err(err))
	}
	grpcSrv.Stop(shutdownCtx)

	logger.Info("api server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// brokerCheck probes the first Kafka broker over TCP.  The API degrades
// rather than fails when the broker is down: synchronous endpoints keep
// working, only job submission would 503.
func brokerCheck(brokers []string) handlers.HealthCheck {
	return func() common.ComponentHealth {
		if len(brokers) == 0 {
			return common.ComponentHealth{Name: "kafka", Status: common.HealthDegraded, Message: "no brokers configured"}
		}
		start := time.Now()
		conn, err := net.DialTimeout("tcp", brokers[0], 2*time.Second)
		if err != nil {
			return common.ComponentHealth{Name: "kafka", Status: common.HealthDegraded, Message: err.Error()}
		}
		conn.Close()
		return common.ComponentHealth{
			Name:    "kafka",
			Status:  common.HealthUp,
			Latency: time.Since(start).Round(time.Millisecond).String(),
		}
	}
}
