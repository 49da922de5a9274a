package layout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 存储布局模块依赖
type ModuleParams struct {
	fx.In

	Provider   config.Provider
	Logger     *zap.Logger           `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// ModuleOutput 存储布局模块输出
type ModuleOutput struct {
	fx.Out

	Resolver      *Resolver
	ResolverIface layoutiface.Resolver
	Catalog       *Catalog
	Metrics       *Metrics
}

// Module 返回存储布局模块
func Module() fx.Option {
	return fx.Module("layout",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 构建解析器并加载声明表
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	options := params.Provider.GetLayout()
	logger := log.NewModuleZapLogger(params.Logger, "layout")

	metrics := NewMetrics(params.Registerer)
	resolver := New(options, logger, metrics)

	catalog, err := NewCatalog(options.ASTPath)
	if err != nil {
		return ModuleOutput{}, err
	}
	logger.Info("声明表已加载",
		zap.String("source", catalog.Source()),
		zap.Int("declarations", len(catalog.Table())))

	return ModuleOutput{
		Resolver:      resolver,
		ResolverIface: resolver,
		Catalog:       catalog,
		Metrics:       metrics,
	}, nil
}
