package app

import (
	"context"
	"fmt"
	"time"

	"github.com/weisyn/slotlayout/internal/api"
	config "github.com/weisyn/slotlayout/internal/config"
	"github.com/weisyn/slotlayout/internal/core/chainhead"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/event"
	log "github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/metrics"
	"github.com/weisyn/slotlayout/internal/core/layout"
	"go.uber.org/fx"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 业务逻辑层
	LayerBusiness = "business"
	// 应用层
	LayerApplication = "application"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		appModule(b.opts),
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		metrics.Module(), // 3. 指标注册表
		event.Module(),   // 4. 事件总线(依赖日志)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		layout.Module(),    // 存储布局解析(依赖配置、日志、指标)
		chainhead.Module(), // 模拟链头(依赖配置、日志、事件)
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{
		api.Module(), // JSON-RPC 与 HTTP 服务
	}
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	allModules = append(allModules, b.opts.extra...)
	return allModules
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	if err := b.opts.loadAppConfig(); err != nil {
		return err
	}

	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	)
	return b.fxApp.Err()
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回应用实例
func BootstrapApp(options ...Option) (App, error) {
	opts := newOptions(options...)
	bootstrap := NewBootstrap(opts)

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
