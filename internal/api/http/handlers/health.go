package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"go.uber.org/zap"
)

// readinessType 就绪检查使用的类型字符串
const readinessType = "uint256"

// HealthHandler 健康检查端点处理器
//
// 提供三层健康检查端点：
// - /health: 完整健康报告（各组件状态）
// - /health/live: 存活检查（进程是否响应）
// - /health/ready: 就绪检查（是否可对外服务）
type HealthHandler struct {
	logger    *zap.Logger
	startTime time.Time
	version   string
	chain     chainhead.Reader
	resolver  layoutiface.Resolver
}

// NewHealthHandler 创建健康检查处理器；chain 与 resolver 可为 nil
func NewHealthHandler(logger *zap.Logger, version string, chain chainhead.Reader, resolver layoutiface.Resolver) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		version:   version,
		chain:     chain,
		resolver:  resolver,
	}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	health := r.Group("/health")
	{
		health.GET("", h.GetHealth)
		health.GET("/live", h.GetLiveness)
		health.GET("/ready", h.GetReadiness)
	}
}

// GetHealth 获取完整健康状态
//
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	components := h.checkComponents(c.Request.Context())

	overallStatus := "healthy"
	for _, component := range components {
		if component["status"] != "healthy" {
			overallStatus = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     overallStatus,
		"version":    h.version,
		"timestamp":  time.Now().Format(time.RFC3339),
		"uptime":     time.Since(h.startTime).String(),
		"components": components,
	})
}

// GetLiveness 存活检查
//
// GET /health/live
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GetReadiness 就绪检查
//
// GET /health/ready
//
// 返回：
// - 200 OK：所有组件可用
// - 503 Service Unavailable：任一组件不可用
func (h *HealthHandler) GetReadiness(c *gin.Context) {
	components := h.checkComponents(c.Request.Context())

	checks := make(map[string]bool, len(components))
	allReady := true
	for name, component := range components {
		ready := component["status"] == "healthy"
		checks[name] = ready
		allReady = allReady && ready
	}

	status, code := "ready", http.StatusOK
	if !allReady {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkComponents(ctx context.Context) map[string]gin.H {
	return map[string]gin.H{
		"chain_head": h.checkChainHead(ctx),
		"layout":     h.checkLayout(),
	}
}

// checkChainHead 读取当前区块号
func (h *HealthHandler) checkChainHead(ctx context.Context) gin.H {
	if h.chain == nil {
		return gin.H{"status": "unavailable"}
	}
	number, err := h.chain.BlockNumber(ctx)
	if err != nil {
		h.logger.Warn("chain head health check failed", zap.Error(err))
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy", "block_number": number}
}

// checkLayout 解析一个标量类型
func (h *HealthHandler) checkLayout() gin.H {
	if h.resolver == nil {
		return gin.H{"status": "unavailable"}
	}
	if _, err := h.resolver.Resolve(readinessType, nil); err != nil {
		h.logger.Warn("layout health check failed", zap.Error(err))
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy"}
}
