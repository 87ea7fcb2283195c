package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/ChemDesc-Engine/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidEnvironment(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.App.Environment = "prod"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.environment")
}

func TestConfig_Validate_InvalidHTTPPort(t *testing.T) {
	t.Parallel()
	cases := []int{0, -1, 65536, 100000}
	for _, p := range cases {
		p := p
		t.Run("", func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.HTTP.Port = p
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "http.port")
		})
	}
}

func TestConfig_Validate_InvalidHTTPMode(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.HTTP.Mode = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http.mode")
}

func TestConfig_Validate_GRPCPortCollision(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.GRPC.Port = cfg.HTTP.Port
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grpc.port")
}

func TestConfig_Validate_MissingKafkaBrokers(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Kafka.Brokers = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestConfig_Validate_MissingKafkaGroupID(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Kafka.GroupID = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.group_id")
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Format = "text"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestConfig_Validate_FingerprintSize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		size int
		ok   bool
	}{
		{"multiple of 8", 512, true},
		{"minimal", 8, true},
		{"not multiple of 8", 100, false},
		{"too small", 4, false},
		{"negative", -8, false},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.Compute.FingerprintSize = tt.size
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "compute.fingerprint_size")
			}
		})
	}
}

func TestConfig_Validate_ComputeBounds(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Compute.MaxBatchSize = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute.max_batch_size")

	cfg = validConfig()
	cfg.Compute.MaxAtoms = -1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute.max_atoms")
}
