// Package app 负责装配并运行 slotlayout 服务
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	internalconfig "github.com/weisyn/slotlayout/internal/config"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	"github.com/weisyn/slotlayout/pkg/types"
	"go.uber.org/fx"
)

// ConfigPathEnv 配置文件路径环境变量，优先级低于显式指定的路径
const ConfigPathEnv = "SLOTLAYOUT_CONFIG"

// appModule 向 config 模块提供已加载的应用配置
func appModule(opts *options) fx.Option {
	return fx.Provide(func() config.AppOptions { return opts })
}

// loadAppConfig 加载配置文件并应用覆盖项
func (o *options) loadAppConfig() error {
	if o.appConfig == nil {
		path := o.configFilePath
		if path == "" {
			path = os.Getenv(ConfigPathEnv)
		}

		var appConfig *types.AppConfig
		var err error
		if path == "" && len(o.embeddedConfig) > 0 {
			appConfig, err = internalconfig.ParseAppConfig(o.embeddedConfig)
		} else {
			appConfig, err = internalconfig.LoadAppConfig(path)
		}
		if err != nil {
			return err
		}
		o.appConfig = appConfig
	}

	for _, override := range o.overrides {
		override(o.appConfig)
	}
	return internalconfig.Validate(o.appConfig)
}

// App 是应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号，然后停止应用
	Wait() error

	// Config 生效的应用配置
	Config() *types.AppConfig
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() error {
	sig := WaitForSignal()
	fmt.Fprintf(os.Stderr, "\n收到信号 %v，正在优雅退出...\n", sig)
	return a.Stop()
}

// Config 生效的应用配置
func (a *internalApp) Config() *types.AppConfig {
	return a.bootstrap.opts.appConfig
}

// Start 加载配置并启动应用
func Start(appOptions ...Option) (App, error) {
	return BootstrapApp(appOptions...)
}

// WaitForSignal 等待退出信号
func WaitForSignal() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	return <-signals
}
