package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apitypes "github.com/weisyn/slotlayout/internal/api/types"
	"go.uber.org/zap"
)

// ErrorHandler 错误处理中间件
// 处理器通过 c.Error 上报的错误统一转换为 Problem Details 写出
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		problem, ok := apitypes.IsProblemDetails(err)
		if !ok {
			logger.Error("Handler returned non-ProblemDetails error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			problem = apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerRPCGateway,
				"服务器内部错误，请稍后重试。",
				fmt.Sprintf("Internal error: %v", err),
				http.StatusInternalServerError,
				map[string]interface{}{
					"path": c.Request.URL.Path,
				},
			)
		}

		logger.Warn("HTTP error",
			zap.String("code", problem.Code),
			zap.String("traceId", problem.TraceID),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		WriteProblemDetails(c, problem)
	}
}

// WriteProblemDetails 写入 Problem Details 响应
func WriteProblemDetails(c *gin.Context, problem *apitypes.ProblemDetails) {
	c.Header("Content-Type", "application/problem+json")
	c.JSON(problem.Status, problem)
	c.Abort()
}
