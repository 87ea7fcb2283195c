// Package config provides configuration loading, defaults, and validation for
// the ChemDesc engine.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultAppName     = "chemdesc"
	DefaultEnvironment = "development"

	DefaultHTTPHost = "0.0.0.0"
	DefaultHTTPPort = 8080
	DefaultHTTPMode = "debug"

	DefaultGRPCHost = "0.0.0.0"
	DefaultGRPCPort = 9090

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "chemdesc-workers"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "chemdesc"
	DefaultMetricsPath      = "/metrics"

	DefaultMaxBatchSize      = 256
	DefaultMaxAtoms          = 4096
	DefaultFingerprintSize   = 1024
	DefaultFingerprintDepth  = 7
	DefaultEnvironmentRadius = 2
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── App ───────────────────────────────────────────────────────────────────
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = DefaultEnvironment
	}

	// ── HTTP ──────────────────────────────────────────────────────────────────
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = DefaultHTTPHost
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = DefaultHTTPPort
	}
	if cfg.HTTP.Mode == "" {
		cfg.HTTP.Mode = DefaultHTTPMode
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 8 << 20 // 8 MiB
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}

	// ── gRPC ──────────────────────────────────────────────────────────────────
	if cfg.GRPC.Host == "" {
		cfg.GRPC.Host = DefaultGRPCHost
	}
	if cfg.GRPC.Port == 0 {
		cfg.GRPC.Port = DefaultGRPCPort
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequestTopic == "" {
		cfg.Kafka.RequestTopic = "molecule.compute.requested"
	}
	if cfg.Kafka.ResultTopic == "" {
		cfg.Kafka.ResultTopic = "molecule.computed"
	}
	if cfg.Kafka.DLQTopic == "" {
		cfg.Kafka.DLQTopic = "molecule.compute.dlq"
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}
	if cfg.Kafka.ConsumeRetries == 0 {
		cfg.Kafka.ConsumeRetries = 3
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 100 * time.Millisecond
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Compute ───────────────────────────────────────────────────────────────
	if cfg.Compute.MaxBatchSize == 0 {
		cfg.Compute.MaxBatchSize = DefaultMaxBatchSize
	}
	if cfg.Compute.MaxAtoms == 0 {
		cfg.Compute.MaxAtoms = DefaultMaxAtoms
	}
	if cfg.Compute.FingerprintSize == 0 {
		cfg.Compute.FingerprintSize = DefaultFingerprintSize
	}
	if cfg.Compute.FingerprintDepth == 0 {
		cfg.Compute.FingerprintDepth = DefaultFingerprintDepth
	}
	if cfg.Compute.EnvironmentRadius == 0 {
		cfg.Compute.EnvironmentRadius = DefaultEnvironmentRadius
	}
	if len(cfg.Compute.WhimSchemes) == 0 {
		cfg.Compute.WhimSchemes = []string{"unity", "mass"}
	}
}
