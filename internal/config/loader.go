// Package config provides configuration loading, defaults, and validation for
// the ChemDesc engine.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "CHEMDESC"

// newViper builds a pre-configured Viper instance with the engine's standard
// settings: YAML file type, CHEMDESC_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like "http.port"
// resolve to "CHEMDESC_HTTP_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every configuration key to viper.  AutomaticEnv only
// surfaces an environment variable through Unmarshal when the key is already
// known, so each key is seeded with its zero value; the real defaults are
// applied afterwards by ApplyDefaults.
func registerKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.environment", "app.debug",
		"http.host", "http.port", "http.mode",
		"http.read_timeout", "http.write_timeout",
		"http.max_body_size", "http.shutdown_timeout",
		"grpc.host", "grpc.port",
		"kafka.brokers", "kafka.group_id",
		"kafka.request_topic", "kafka.result_topic", "kafka.dlq_topic",
		"kafka.auto_offset_reset", "kafka.producer_retries",
		"kafka.consume_retries", "kafka.batch_timeout",
		"log.level", "log.format", "log.output_paths",
		"metrics.enabled", "metrics.namespace", "metrics.path",
		"compute.max_batch_size", "compute.max_atoms",
		"compute.fingerprint_size", "compute.fingerprint_depth",
		"compute.environment_radius", "compute.whim_schemes",
	} {
		v.SetDefault(key, nil)
	}
}

// Load reads the YAML file at configPath, merges any CHEMDESC_* environment
// variable overrides, applies engine defaults for unset fields, and
// validates the result.  It returns a fully-populated *Config or a
// descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from CHEMDESC_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	CHEMDESC_<SECTION>_<FIELD>   e.g.  CHEMDESC_HTTP_PORT, CHEMDESC_LOG_LEVEL
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called and
// the change is dropped so the application never sees a broken config.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
