// Package metrics exposes render metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "leaderboard"

// Collector 渲染指标，实现 leaderboard.Observer
type Collector struct {
	renders       prometheus.Counter
	rows          prometheus.Counter
	missingTarget prometheus.Counter
	duration      prometheus.Histogram
}

// NewCollector 创建指标并注册到 reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Number of completed leaderboard renders.",
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rendered_total",
			Help:      "Number of rows written to output surfaces.",
		}),
		missingTarget: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_target_total",
			Help:      "Number of renders skipped because the target container was absent.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent ranking and writing rows.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(c.renders, c.rows, c.missingTarget, c.duration)
	}
	return c
}

func (c *Collector) ObserveRender(rows int, elapsed time.Duration) {
	c.renders.Inc()
	c.rows.Add(float64(rows))
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveMissingTarget() {
	c.missingTarget.Inc()
}
