// Package metrics records run statistics in a prometheus registry and
// exports them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/adhosts/internal/domain"
)

// Recorder owns a private registry so repeated runs in one process never
// collide with the default registry.
type Recorder struct {
	registry *prometheus.Registry

	sourceFetched   *prometheus.GaugeVec
	sourceConverted *prometheus.GaugeVec
	sourceUp        *prometheus.GaugeVec
	uniqueRaw       prometheus.Gauge
	uniqueConverted prometheus.Gauge
	lastRun         prometheus.Gauge
	runDuration     prometheus.Gauge
	lastRunWritten  prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sourceFetched: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adhosts_source_fetched_rules",
				Help: "Lines fetched from each source in the last run",
			},
			[]string{"source"},
		),
		sourceConverted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adhosts_source_converted_rules",
				Help: "Unique entries credited to each source in the last run",
			},
			[]string{"source"},
		),
		sourceUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adhosts_source_up",
				Help: "Whether the source was fetched successfully in the last run",
			},
			[]string{"source"},
		),
		uniqueRaw: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adhosts_unique_raw_rules",
			Help: "Distinct raw lines across all sources in the last run",
		}),
		uniqueConverted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adhosts_unique_converted_rules",
			Help: "Distinct hosts entries produced by the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adhosts_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adhosts_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastRunWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adhosts_last_run_written",
			Help: "1 if the last run wrote the hosts file, 0 otherwise",
		}),
	}
	r.registry.MustRegister(
		r.sourceFetched,
		r.sourceConverted,
		r.sourceUp,
		r.uniqueRaw,
		r.uniqueConverted,
		r.lastRun,
		r.runDuration,
		r.lastRunWritten,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe replaces the recorded values with those of result.
func (r *Recorder) Observe(result domain.RunResult, written bool, finished time.Time, took time.Duration) {
	// Source sets may change between runs in watch mode.
	r.sourceFetched.Reset()
	r.sourceConverted.Reset()
	r.sourceUp.Reset()

	for _, s := range result.Sources {
		r.sourceFetched.WithLabelValues(s.Source).Set(float64(s.Fetched))
		r.sourceConverted.WithLabelValues(s.Source).Set(float64(s.Converted))
		r.sourceUp.WithLabelValues(s.Source).Set(boolGauge(s.OK()))
	}
	r.uniqueRaw.Set(float64(result.UniqueRaw))
	r.uniqueConverted.Set(float64(result.UniqueConverted))
	r.lastRun.Set(float64(finished.Unix()))
	r.runDuration.Set(took.Seconds())
	r.lastRunWritten.Set(boolGauge(written))
}

// WriteTextfile atomically writes the registry to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
