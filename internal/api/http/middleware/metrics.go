package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// unmatchedPath 未命中路由时使用的 path 标签，避免标签基数失控
const unmatchedPath = "unmatched"

// Metrics 指标收集中间件
// 收集API性能指标，用于监控和告警
type Metrics struct {
	logger          *zap.Logger
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestSize     *prometheus.SummaryVec
	responseSize    *prometheus.SummaryVec
}

// NewMetrics 创建指标中间件；reg 为 nil 时注册到默认注册表
func NewMetrics(logger *zap.Logger, reg prometheus.Registerer) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		logger: logger,
	}

	m.requestCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotlayout",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	m.requestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "slotlayout",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	m.requestSize = factory.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "slotlayout",
			Subsystem:  "api",
			Name:       "request_size_bytes",
			Help:       "API request size in bytes",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "path"},
	)

	m.responseSize = factory.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "slotlayout",
			Subsystem:  "api",
			Name:       "response_size_bytes",
			Help:       "API response size in bytes",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "path"},
	)

	return m
}

// Middleware 返回Gin中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// 路由模板而非原始路径
		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}

		duration := time.Since(start)
		status := c.Writer.Status()
		requestSize := c.Request.ContentLength
		responseSize := c.Writer.Size()

		if requestSize > 0 {
			m.requestSize.WithLabelValues(method, path).Observe(float64(requestSize))
		}
		m.requestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
		if responseSize > 0 {
			m.responseSize.WithLabelValues(method, path).Observe(float64(responseSize))
		}

		m.logger.Debug("Request metrics collected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.Int64("request_size", requestSize),
			zap.Int("response_size", responseSize),
		)
	}
}
