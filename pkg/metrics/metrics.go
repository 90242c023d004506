// Package metrics records per-run probe statistics in a private Prometheus
// registry and writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"proxyrank/pkg/checker"
)

type Recorder struct {
	registry      *prometheus.Registry
	probes        *prometheus.CounterVec
	probeDuration prometheus.Histogram
	ranked        prometheus.Gauge
	runDuration   prometheus.Gauge
	lastRun       prometheus.Gauge
}

func NewRecorder(proxyType checker.ProxyType) *Recorder {
	labels := prometheus.Labels{"proxy_type": proxyType.String()}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "proxyrank_probes_total",
			Help:        "Proxies probed, by outcome.",
			ConstLabels: labels,
		}, []string{"status"}),
		probeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "proxyrank_probe_duration_seconds",
			Help:        "Response time of good proxies.",
			ConstLabels: labels,
			Buckets:     []float64{0.1, 0.3, 0.7, 1.5, 3, 5, 10},
		}),
		ranked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "proxyrank_ranked_proxies",
			Help:        "Good proxies written by the last run.",
			ConstLabels: labels,
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "proxyrank_run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "proxyrank_last_run_timestamp_seconds",
			Help:        "Unix time the last run finished.",
			ConstLabels: labels,
		}),
	}

	r.registry.MustRegister(r.probes, r.probeDuration, r.ranked, r.runDuration, r.lastRun)
	return r
}

// Observe records every result of a run together with its summary.
func (r *Recorder) Observe(results []checker.ProbeResult, summary checker.Summary) {
	for _, res := range results {
		r.probes.WithLabelValues(res.Status.String()).Inc()
		if res.Good() {
			r.probeDuration.Observe(res.Seconds())
		}
	}
	r.ranked.Set(float64(summary.Good))
	r.runDuration.Set(summary.Elapsed.Seconds())
	r.lastRun.Set(float64(time.Now().Unix()))
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically replaces path with the current metric values.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
