package jsonrpc

import (
	"context"

	"github.com/weisyn/slotlayout/internal/api/jsonrpc/methods"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/internal/core/layout"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams JSON-RPC 模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Provider   config.Provider
	Logger     *zap.Logger `optional:"true"`
	Reader     chainhead.Reader
	Controller chainhead.Controller
	Resolver   layoutiface.Resolver
	Catalog    *layout.Catalog
}

// ModuleOutput JSON-RPC 模块输出
type ModuleOutput struct {
	fx.Out

	Server        *Server
	LayoutMethods *methods.LayoutMethods
}

// Module 返回 JSON-RPC 模块
func Module() fx.Option {
	return fx.Module("jsonrpc",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建服务器并注册全部方法
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	options := params.Provider.GetAPI()
	logger := log.NewModuleZapLogger(params.Logger, "jsonrpc")

	cacheCtx, cancel := context.WithCancel(context.Background())
	cache, err := methods.NewResponseCache(cacheCtx, options.LayoutCache, logger)
	if err != nil {
		cancel()
		return ModuleOutput{}, err
	}
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			cancel()
			return cache.Close()
		},
	})

	layoutMethods := methods.NewLayoutMethods(logger, params.Resolver, params.Catalog, cache)

	server := NewServer(logger, int64(options.HTTP.MaxRequestSize))
	server.RegisterGroup(methods.NewEthMethods(logger, params.Reader))
	server.RegisterGroup(methods.NewDevMethods(logger, params.Controller))
	server.RegisterGroup(layoutMethods)

	logger.Info("JSON-RPC 方法已注册",
		zap.Strings("methods", server.Methods()),
		zap.Bool("layout_cache", cache != nil))

	return ModuleOutput{
		Server:        server,
		LayoutMethods: layoutMethods,
	}, nil
}
