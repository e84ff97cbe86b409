// Package metrics exposes replica decoding counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame kinds used as the "frame" label.
const (
	FrameConstruction  = "construction"
	FrameSerialization = "serialization"
)

// Outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeUnresolved = "unresolved"
	OutcomeFailed     = "failed"
)

// Deferral events used as the "event" label.
const (
	DeferQueued   = "queued"
	DeferReplayed = "replayed"
	DeferDropped  = "dropped"
)

type Config struct {
	// Namespace is the metrics namespace (default: "replicanet").
	Namespace string
	// Subsystem is the metrics subsystem (default: "replica").
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64
	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "replicanet",
		Subsystem: "replica",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records decoder activity. A nil *Collector discards everything.
type Collector struct {
	frames      *prometheus.CounterVec
	components  *prometheus.CounterVec
	deferred    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	connections prometheus.Gauge
}

func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		frames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Replica frames processed, by frame kind and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"frame", "outcome"}),

		components: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components_total",
			Help:        "Component payloads decoded, by component kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		deferred: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_frames_total",
			Help:        "Serialization frames held for objects not yet constructed",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_duration_seconds",
			Help:        "Time spent decoding one frame",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"frame"}),

		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connections",
			Help:        "Open replica connections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Frame counts one frame and observes how long it took.
func (c *Collector) Frame(frame, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.frames.WithLabelValues(frame, outcome).Inc()
	c.duration.WithLabelValues(frame).Observe(elapsed.Seconds())
}

func (c *Collector) Component(kind string) {
	if c == nil {
		return
	}
	c.components.WithLabelValues(kind).Inc()
}

func (c *Collector) Deferred(event string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.deferred.WithLabelValues(event).Add(float64(n))
}

func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connections.Inc()
}

func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connections.Dec()
}
