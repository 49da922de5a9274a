package layout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 解析结果标签
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics 存储布局解析指标
type Metrics struct {
	resolutions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	depth       prometheus.Histogram
}

// NewMetrics 在指定注册表中注册解析指标；reg 为 nil 时使用默认注册表
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slotlayout",
				Subsystem: "resolver",
				Name:      "resolutions_total",
				Help:      "Top-level type resolutions by root category and outcome",
			},
			[]string{"category", "outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slotlayout",
				Subsystem: "resolver",
				Name:      "failures_total",
				Help:      "Failed resolutions by error kind",
			},
			[]string{"kind"},
		),
		depth: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "slotlayout",
				Subsystem: "resolver",
				Name:      "max_depth",
				Help:      "Deepest nesting reached while resolving a type",
				Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 32, 64},
			},
		),
	}
}

func (m *Metrics) observe(category string, maxDepth int, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
		m.failures.WithLabelValues(string(KindOf(err))).Inc()
	}
	m.resolutions.WithLabelValues(category, outcome).Inc()
	m.depth.Observe(float64(maxDepth))
}
