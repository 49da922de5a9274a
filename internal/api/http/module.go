package http

import (
	"context"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc/methods"
	corelog "github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/log"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"go.uber.org/fx"
)

// ModuleParams HTTP模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Provider      config.Provider
	Logger        log.Logger
	RPC           *jsonrpc.Server
	LayoutMethods *methods.LayoutMethods
	Chain         chainhead.Reader
	Resolver      layoutiface.Resolver
	Registerer    prometheus.Registerer `optional:"true"`
	Gatherer      prometheus.Gatherer   `optional:"true"`
}

// initializeGinMode 在模块加载时初始化GIN模式
func initializeGinMode() {
	gin.SetMode(gin.ReleaseMode)
	if os.Getenv("SLOTLAYOUT_QUIET") == "true" {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
	}
}

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Options(
		fx.Invoke(initializeGinMode),
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建HTTP服务器并挂载生命周期
func ProvideServer(params ModuleParams) *Server {
	options := params.Provider.GetAPI()
	logger := corelog.NewModuleLogger(params.Logger, "http")

	server := NewServer(ServerDeps{
		Options:       options.HTTP,
		Logger:        logger,
		RPC:           params.RPC,
		LayoutMethods: params.LayoutMethods,
		Chain:         params.Chain,
		Resolver:      params.Resolver,
		Registerer:    params.Registerer,
		Gatherer:      params.Gatherer,
	})

	if !options.HTTP.Enabled {
		logger.Warn("HTTP服务在配置中被禁用")
		return server
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}
