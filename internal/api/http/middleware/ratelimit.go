package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	apitypes "github.com/weisyn/slotlayout/internal/api/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit 按客户端IP的令牌桶限流中间件
type RateLimit struct {
	logger *zap.Logger
	limit  rate.Limit
	burst  int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimit 创建限流中间件；rps ≤ 0 时不限流
func NewRateLimit(logger *zap.Logger, rps float64, burst int) *RateLimit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimit{
		logger:   logger,
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Enabled 是否启用限流
func (m *RateLimit) Enabled() bool {
	return m.limit > 0
}

// Middleware 返回Gin中间件
func (m *RateLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}

		clientID := c.ClientIP()
		if !m.limiter(clientID).Allow() {
			m.logger.Warn("Request rate limit exceeded",
				zap.String("client_ip", clientID),
				zap.String("path", c.Request.URL.Path))
			WriteProblemDetails(c, apitypes.NewProblemDetails(
				apitypes.CodeCommonRateLimited,
				apitypes.LayerRPCGateway,
				"请求过于频繁，请稍后重试。",
				"Request rate limit exceeded",
				http.StatusTooManyRequests,
				map[string]interface{}{
					"limit": float64(m.limit),
					"burst": m.burst,
				},
			))
			return
		}

		c.Next()
	}
}

// limiter 获取或创建客户端的令牌桶
func (m *RateLimit) limiter(clientID string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[clientID]
	if !ok {
		l = rate.NewLimiter(m.limit, m.burst)
		m.limiters[clientID] = l
	}
	return l
}
