// Package config defines all configuration structures for the ChemDesc
// engine.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// AppConfig identifies the running process.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // "development" | "staging" | "production"
	Debug       bool   `mapstructure:"debug"`
}

// HTTPConfig holds HTTP server tunables.
type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GRPCConfig holds the gRPC health/probe listener parameters.
type GRPCConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// KafkaConfig holds Apache Kafka producer/consumer parameters for the async
// compute pipeline.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	RequestTopic    string        `mapstructure:"request_topic"`
	ResultTopic     string        `mapstructure:"result_topic"`
	DLQTopic        string        `mapstructure:"dlq_topic"`
	AutoOffsetReset string        `mapstructure:"auto_offset_reset"` // "earliest" | "latest"
	ProducerRetries int           `mapstructure:"producer_retries"`
	ConsumeRetries  int           `mapstructure:"consume_retries"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ComputeConfig bounds descriptor computation.
type ComputeConfig struct {
	MaxBatchSize      int      `mapstructure:"max_batch_size"`
	MaxAtoms          int      `mapstructure:"max_atoms"`
	FingerprintSize   int      `mapstructure:"fingerprint_size"`
	FingerprintDepth  int      `mapstructure:"fingerprint_depth"`
	EnvironmentRadius int      `mapstructure:"environment_radius"`
	WhimSchemes       []string `mapstructure:"whim_schemes"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.  Every component
// reads its settings from the relevant sub-struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Compute ComputeConfig `mapstructure:"compute"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// App
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("config: app.environment %q is invalid; expected development|staging|production", c.App.Environment)
	}

	// HTTP
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: http.port %d is out of range [1, 65535]", c.HTTP.Port)
	}
	switch c.HTTP.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: http.mode %q is invalid; expected debug|release|test", c.HTTP.Mode)
	}

	// gRPC
	if c.GRPC.Port < 1 || c.GRPC.Port > 65535 {
		return fmt.Errorf("config: grpc.port %d is out of range [1, 65535]", c.GRPC.Port)
	}
	if c.GRPC.Port == c.HTTP.Port {
		return fmt.Errorf("config: grpc.port and http.port must differ, both are %d", c.GRPC.Port)
	}

	// Kafka
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("config: kafka.group_id is required")
	}
	switch c.Kafka.AutoOffsetReset {
	case "earliest", "latest":
	default:
		return fmt.Errorf("config: kafka.auto_offset_reset %q is invalid; expected earliest|latest", c.Kafka.AutoOffsetReset)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Compute
	if c.Compute.MaxBatchSize < 1 {
		return fmt.Errorf("config: compute.max_batch_size must be ≥ 1, got %d", c.Compute.MaxBatchSize)
	}
	if c.Compute.MaxAtoms < 1 {
		return fmt.Errorf("config: compute.max_atoms must be ≥ 1, got %d", c.Compute.MaxAtoms)
	}
	if c.Compute.FingerprintSize < 8 || c.Compute.FingerprintSize%8 != 0 {
		return fmt.Errorf("config: compute.fingerprint_size must be a positive multiple of 8, got %d", c.Compute.FingerprintSize)
	}
	if c.Compute.FingerprintDepth < 1 {
		return fmt.Errorf("config: compute.fingerprint_depth must be ≥ 1, got %d", c.Compute.FingerprintDepth)
	}
	if c.Compute.EnvironmentRadius < 1 {
		return fmt.Errorf("config: compute.environment_radius must be ≥ 1, got %d", c.Compute.EnvironmentRadius)
	}

	return nil
}
