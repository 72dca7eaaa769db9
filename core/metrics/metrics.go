package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by the sync engine.
type Recorder interface {
	RecordSyncRun(platform, outcome string, duration time.Duration)
	RecordMatch(method string)
	RecordUnrecognized(platform string, count int)
	RecordQuotaDenied(platform string)
	RecordLimiterWait(duration time.Duration)
}

// Sync run outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeInProgress = "in_progress"
)

// Collector records engine metrics into a Prometheus registry.
type Collector struct {
	syncRuns     *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	matches      *prometheus.CounterVec
	unrecognized *prometheus.CounterVec
	quotaDenied  *prometheus.CounterVec
	limiterWait  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_sync_runs_total",
			Help: "Sync runs by platform and outcome.",
		}, []string{"platform", "outcome"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "library_sync_run_duration_seconds",
			Help:    "Duration of sync runs.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"platform"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_sync_matches_total",
			Help: "Resolved titles by cascade method.",
		}, []string{"method"}),
		unrecognized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_sync_unrecognized_total",
			Help: "Titles left unmatched after the full cascade.",
		}, []string{"platform"}),
		quotaDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_sync_quota_denied_total",
			Help: "Platform calls denied by the windowed budget.",
		}, []string{"platform"}),
		limiterWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "library_sync_catalog_limiter_wait_seconds",
			Help:    "Time spent queued for the catalog source.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.syncRuns,
		c.syncDuration,
		c.matches,
		c.unrecognized,
		c.quotaDenied,
		c.limiterWait,
	)

	return c
}

// RecordSyncRun counts a finished run.
func (c *Collector) RecordSyncRun(platform, outcome string, duration time.Duration) {
	c.syncRuns.WithLabelValues(platform, outcome).Inc()
	if outcome != OutcomeInProgress {
		c.syncDuration.WithLabelValues(platform).Observe(duration.Seconds())
	}
}

// RecordMatch counts one resolved title.
func (c *Collector) RecordMatch(method string) {
	c.matches.WithLabelValues(method).Inc()
}

// RecordUnrecognized counts unmatched titles of one run.
func (c *Collector) RecordUnrecognized(platform string, count int) {
	c.unrecognized.WithLabelValues(platform).Add(float64(count))
}

// RecordQuotaDenied counts a budget denial.
func (c *Collector) RecordQuotaDenied(platform string) {
	c.quotaDenied.WithLabelValues(platform).Inc()
}

// RecordLimiterWait observes one catalog limiter wait.
func (c *Collector) RecordLimiterWait(duration time.Duration) {
	c.limiterWait.Observe(duration.Seconds())
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordSyncRun(string, string, time.Duration) {}
func (Nop) RecordMatch(string)                          {}
func (Nop) RecordUnrecognized(string, int)              {}
func (Nop) RecordQuotaDenied(string)                    {}
func (Nop) RecordLimiterWait(time.Duration)             {}

// Handler returns a fiber handler serving the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
