package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/slotlayout/internal/api/http/handlers"
	"github.com/weisyn/slotlayout/internal/api/http/middleware"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc/methods"
	"github.com/weisyn/slotlayout/internal/app/version"
	apiconfig "github.com/weisyn/slotlayout/internal/config/api"
	corelog "github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/log"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
)

// Server HTTP服务器
//
// 路由：
//   - POST /、POST /jsonrpc: JSON-RPC 2.0
//   - GET /health、/health/live、/health/ready: 健康检查
//   - GET /api/v1/layout、/api/v1/layout/declarations: 存储布局 REST 查询
//   - GET /metrics: Prometheus 指标
type Server struct {
	router  *gin.Engine
	options apiconfig.HTTPConfig
	logger  log.Logger

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// ServerDeps HTTP服务器依赖
type ServerDeps struct {
	Options       apiconfig.HTTPConfig
	Logger        log.Logger
	RPC           *jsonrpc.Server
	LayoutMethods *methods.LayoutMethods
	Chain         chainhead.Reader
	Resolver      layoutiface.Resolver
	Registerer    prometheus.Registerer
	Gatherer      prometheus.Gatherer
}

// NewServer 创建HTTP服务器并注册路由；不会开始监听
func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = corelog.FromZap(nil)
	}
	zapLogger := deps.Logger.GetZapLogger()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.NewRequestID().Middleware(),
		middleware.NewAccessLog(zapLogger).Middleware(),
		middleware.NewMetrics(zapLogger, deps.Registerer).Middleware(),
		middleware.NewRateLimit(zapLogger, deps.Options.RateLimitRPS, deps.Options.RateLimitBurst).Middleware(),
		middleware.ErrorHandler(zapLogger),
	)

	server := &Server{
		router:  router,
		options: deps.Options,
		logger:  deps.Logger,
	}
	server.setupRoutes(deps)
	return server
}

// setupRoutes 设置HTTP路由
func (s *Server) setupRoutes(deps ServerDeps) {
	handlers.NewHealthHandler(deps.Logger.GetZapLogger(), version.GetVersion(), deps.Chain, deps.Resolver).
		RegisterRoutes(s.router)

	if s.options.EnableJSONRPC && deps.RPC != nil {
		rpc := gin.WrapH(deps.RPC)
		s.router.POST("/", rpc)
		s.router.POST("/jsonrpc", rpc)
		s.logger.Infof("JSON-RPC 已启用，方法数: %d", len(deps.RPC.Methods()))
	}

	if deps.LayoutMethods != nil {
		v1 := s.router.Group("/api/v1")
		handlers.NewLayoutHandler(deps.LayoutMethods).RegisterRoutes(v1)
	}

	if s.options.EnableMetrics && deps.Gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
}

// Handler 返回路由处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 开始监听；监听在后台协程中进行
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return errors.New("HTTP服务器已启动")
	}

	addr := net.JoinHostPort(s.options.Host, fmt.Sprintf("%d", s.options.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", addr, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
		IdleTimeout:  s.options.IdleTimeout,
	}

	go func(srv *http.Server) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}(s.httpServer)

	s.logger.Infof("HTTP服务器启动成功，监听地址: %s", listener.Addr().String())
	return nil
}

// Addr 实际监听地址；未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop 优雅关闭，最多等待 5 秒
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	s.logger.Info("正在关闭HTTP服务器")
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}

	s.logger.Info("HTTP服务器已关闭")
	return nil
}
