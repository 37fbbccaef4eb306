package fov

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fov_pass_total",
		Help: "The total number of visibility passes.",
	})

	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fov_pass_duration_seconds",
		Help:    "The time to run a full 24-sector visibility pass.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	passVisibleCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fov_pass_visible_cells",
		Help:    "The number of visible cells reported per pass.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)

func instrumentPass(d time.Duration, visibleCells int) {
	passCount.Inc()
	passDuration.Observe(d.Seconds())
	passVisibleCells.Observe(float64(visibleCells))
}
