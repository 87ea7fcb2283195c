// Command worker consumes compute jobs from Kafka, runs the descriptor
// engine over each molecule and publishes results back onto the computed
// topic.  Failed messages are retried with backoff and dead-lettered when
// retries are exhausted.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/config"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	grpcserver "github.com/turtacn/ChemDesc-Engine/internal/interfaces/grpc"
)

// Populated at build time via -ldflags.
var version = "dev"

const (
	workerHealthService = "chemdesc.worker"
	metricsPort         = 9091
	shutdownTimeout     = 30 * time.Second
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
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
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
	logger = logger.Named("worker")

	logger.Info("starting compute worker",
		logging.String("version", version),
		logging.Strings("brokers", cfg.Kafka.Brokers),
		logging.String("group", cfg.Kafka.GroupID),
		logging.String("request_topic", cfg.Kafka.RequestTopic),
	)

	var appMetrics *prometheus.AppMetrics
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			Subsystem:            "worker",
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return err
		}
		appMetrics = prometheus.NewAppMetrics(collector)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		metricsSrv = &http.Server{Addr: fmt.Sprintf(":%d", metricsPort), Handler: mux}
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

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:         cfg.Kafka.Brokers,
		GroupID:         cfg.Kafka.GroupID,
		Topics:          []string{cfg.Kafka.RequestTopic},
		AutoOffsetReset: cfg.Kafka.AutoOffsetReset,
		Retry: kafka.RetryConfig{
			MaxRetries:      cfg.Kafka.ConsumeRetries,
			RetryBackoff:    time.Second,
			MaxRetryBackoff: 30 * time.Second,
			DeadLetterTopic: cfg.Kafka.DLQTopic,
		},
	}, logger, appMetrics)
	if err != nil {
		return err
	}
	defer consumer.Close()

	service := compute.NewService(compute.Config{
		MaxBatchSize:      cfg.Compute.MaxBatchSize,
		MaxAtoms:          cfg.Compute.MaxAtoms,
		FingerprintSize:   cfg.Compute.FingerprintSize,
		FingerprintDepth:  cfg.Compute.FingerprintDepth,
		EnvironmentRadius: cfg.Compute.EnvironmentRadius,
	}, logger, appMetrics)

	worker := compute.NewWorker(service, producer, logger, cfg.App.Name)
	worker.Register(consumer)

	grpcSrv, err := grpcserver.NewServer(cfg.GRPC, cfg.App, logger, appMetrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		return err
	}
	grpcSrv.SetServing(workerHealthService, true)

	errCh := make(chan error, 2)
	go func() { errCh <- grpcSrv.Start() }()
	if metricsSrv != nil {
		go func() {
			logger.Info("metrics endpoint listening", logging.String("addr", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("worker component failed", logging.Err(err))
			return err
		}
	}

	grpcSrv.SetServing(workerHealthService, false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := consumer.Close(); err != nil {
		logger.Error("consumer close failed", logging.Err(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics endpoint shutdown failed", logging.Err(err))
		}
	}
	grpcSrv.Stop(shutdownCtx)

	logger.Info("worker stopped",
		logging.Int64("consumed", consumer.Consumed()),
		logging.Int64("processed", consumer.Processed()),
		logging.Int64("dead_lettered", consumer.DeadLettered()),
	)
	return nil
}
