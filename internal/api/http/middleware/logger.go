package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apitypes "github.com/weisyn/slotlayout/internal/api/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog 访问日志中间件
//
// 每个请求一条结构化日志。JSON-RPC 请求附带方法名，
// 健康探针只记 Debug。
type AccessLog struct {
	logger *zap.Logger
}

// NewAccessLog 创建访问日志中间件
func NewAccessLog(logger *zap.Logger) *AccessLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessLog{logger: logger.Named("access")}
}

// Middleware 返回Gin中间件；需注册在 RequestID 之后
func (m *AccessLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, rpcMethod := apitypes.WithRPCMethodSlot(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if *rpcMethod != "" {
			fields = append(fields, zap.String("rpc_method", *rpcMethod))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if ce := m.logger.Check(accessLevel(c.FullPath(), status), "HTTP request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func accessLevel(route string, status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	case strings.HasPrefix(route, "/health"):
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
