// Package config loads replicanet settings from a YAML file with
// REPLICANET_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/replica"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "REPLICANET_"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Type database drivers.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

type Config struct {
	Log          LogConfig          `yaml:"log" envPrefix:"LOG_"`
	TypeDatabase TypeDatabaseConfig `yaml:"type_database" envPrefix:"TYPE_DATABASE_"`
	Replica      ReplicaConfig      `yaml:"replica" envPrefix:"REPLICA_"`
	Session      SessionConfig      `yaml:"session" envPrefix:"SESSION_"`
	Metrics      MetricsConfig      `yaml:"metrics" envPrefix:"METRICS_"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type TypeDatabaseConfig struct {
	// Driver is "yaml" for a static table or "sqlite" for the client database.
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
	// Cache memoizes lookups in front of the driver.
	Cache bool `yaml:"cache" env:"CACHE"`
}

type ReplicaConfig struct {
	DeferUnresolved   bool `yaml:"defer_unresolved" env:"DEFER_UNRESOLVED"`
	MaxDeferredFrames int  `yaml:"max_deferred_frames" env:"MAX_DEFERRED_FRAMES"`
	StrictTrailing    bool `yaml:"strict_trailing" env:"STRICT_TRAILING"`
}

type SessionConfig struct {
	Shards  int `yaml:"shards" env:"SHARDS"`
	Workers int `yaml:"workers" env:"WORKERS"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		TypeDatabase: TypeDatabaseConfig{
			Driver: DriverYAML,
			Cache:  true,
		},
		Replica: ReplicaConfig{
			MaxDeferredFrames: replica.DefaultMaxDeferredFrames,
		},
		Session: SessionConfig{
			Shards:  16,
			Workers: 8,
		},
		Metrics: MetricsConfig{
			Namespace: "replicanet",
		},
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays REPLICANET_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.TypeDatabase.Driver) {
	case DriverYAML, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("type_database.driver %q is not one of yaml, sqlite", c.TypeDatabase.Driver))
	}
	if c.TypeDatabase.Driver == DriverSQLite && strings.TrimSpace(c.TypeDatabase.Path) == "" {
		errs = append(errs, errors.New("type_database.path is required for sqlite"))
	}
	if c.Replica.DeferUnresolved && c.Replica.MaxDeferredFrames <= 0 {
		errs = append(errs, errors.New("replica.max_deferred_frames must be positive when deferral is on"))
	}
	if c.Session.Shards <= 0 {
		errs = append(errs, errors.New("session.shards must be positive"))
	}
	if c.Session.Workers < 0 {
		errs = append(errs, errors.New("session.workers must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
