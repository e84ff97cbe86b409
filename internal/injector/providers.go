package injector

import (
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeusync/replicanet/internal/config"
	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/observability/metrics"
	"github.com/zeusync/replicanet/internal/core/replica/session"
	"github.com/zeusync/replicanet/internal/core/replica/typedb"
)

// App is everything a replica consumer needs, built from one Config.
type App struct {
	Config   config.Config
	Log      *log.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Collector
	TypeDB   typedb.Database
	Sessions *session.Manager
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideTypeDatabase,
	ProvideSessionConfig,
	session.NewManager,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics returns nil when metrics are disabled; a nil collector
// records nothing.
func ProvideMetrics(cfg config.Config, reg *prometheus.Registry) *metrics.Collector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(
		metrics.WithRegistry(reg),
		metrics.WithNamespace(cfg.Metrics.Namespace),
	)
}

func ProvideTypeDatabase(cfg config.Config, logger *log.Logger) (typedb.Database, func(), error) {
	var (
		db      typedb.Database
		cleanup = func() {}
	)
	switch cfg.TypeDatabase.Driver {
	case config.DriverSQLite:
		sqlite, err := typedb.OpenSQLite(cfg.TypeDatabase.Path)
		if err != nil {
			return nil, nil, err
		}
		db = sqlite
		cleanup = func() {
			if err := sqlite.Close(); err != nil {
				logger.Warn("close type database", log.Error(err))
			}
		}
	case config.DriverYAML:
		if cfg.TypeDatabase.Path == "" {
			db = typedb.NewStatic(nil)
			break
		}
		static, err := typedb.LoadYAMLFile(cfg.TypeDatabase.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load type table: %w", err)
		}
		db = static
	default:
		return nil, nil, fmt.Errorf("%w: type database driver %q", config.ErrInvalidConfig, cfg.TypeDatabase.Driver)
	}

	if cfg.TypeDatabase.Cache {
		db = typedb.NewCached(db)
	}
	logger.Debug("type database ready",
		log.String("driver", cfg.TypeDatabase.Driver),
		log.Bool("cache", cfg.TypeDatabase.Cache),
	)
	return db, cleanup, nil
}

func ProvideSessionConfig(cfg config.Config) session.Config {
	return session.Config{
		Shards:            cfg.Session.Shards,
		Workers:           cfg.Session.Workers,
		DeferUnresolved:   cfg.Replica.DeferUnresolved,
		MaxDeferredFrames: cfg.Replica.MaxDeferredFrames,
		StrictTrailing:    cfg.Replica.StrictTrailing,
	}
}
