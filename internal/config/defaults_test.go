package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultEnvironment, cfg.App.Environment)
	assert.Equal(t, DefaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, DefaultGRPCPort, cfg.GRPC.Port)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, "molecule.compute.requested", cfg.Kafka.RequestTopic)
	assert.Equal(t, "molecule.computed", cfg.Kafka.ResultTopic)
	assert.Equal(t, "molecule.compute.dlq", cfg.Kafka.DLQTopic)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultFingerprintSize, cfg.Compute.FingerprintSize)
	assert.Equal(t, []string{"unity", "mass"}, cfg.Compute.WhimSchemes)
	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	cfg.HTTP.Port = 9999
	cfg.Log.Level = "debug"
	cfg.Compute.WhimSchemes = []string{"vdw"}
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"vdw"}, cfg.Compute.WhimSchemes)
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}
