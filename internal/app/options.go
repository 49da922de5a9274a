package app

import (
	"go.uber.org/fx"

	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	"github.com/weisyn/slotlayout/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容（未指定配置文件时使用）
	embeddedConfig []byte

	// 用户配置；命令行覆盖项在加载配置文件后应用
	appConfig *types.AppConfig
	overrides []func(*types.AppConfig)

	// API支持开关 (默认启用)
	enableAPI bool

	// 附加的 fx 选项（测试中用于替换依赖）
	extra []fx.Option
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容
// 只有在未指定配置文件且未设置环境变量时生效
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接提供应用配置（优先级高于WithConfigFile）
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithHTTPPort 覆盖HTTP监听端口
func WithHTTPPort(port int) Option {
	return withOverride(func(c *types.AppConfig) {
		if c.API == nil {
			c.API = &types.UserAPIConfig{}
		}
		c.API.HTTPPort = types.IntPtr(port)
	})
}

// WithCoinbase 覆盖模拟链头的 coinbase
func WithCoinbase(coinbase string) Option {
	return withOverride(func(c *types.AppConfig) {
		if c.ChainHead == nil {
			c.ChainHead = &types.UserChainHeadConfig{}
		}
		c.ChainHead.Coinbase = types.StringPtr(coinbase)
	})
}

// WithASTPath 覆盖启动时加载的声明文件
func WithASTPath(path string) Option {
	return withOverride(func(c *types.AppConfig) {
		if c.Layout == nil {
			c.Layout = &types.UserLayoutConfig{}
		}
		c.Layout.ASTPath = types.StringPtr(path)
	})
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// WithFxOptions 追加 fx 选项
func WithFxOptions(extra ...fx.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, extra...)
	}
}

func withOverride(fn func(*types.AppConfig)) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, fn)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		enableAPI: true,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
