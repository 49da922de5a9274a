package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/weisyn/slotlayout/internal/config/api"
	"github.com/weisyn/slotlayout/internal/config/chainhead"
	"github.com/weisyn/slotlayout/internal/config/layout"
	"github.com/weisyn/slotlayout/internal/config/log"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	"github.com/weisyn/slotlayout/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetLayout 获取存储布局解析配置
func (p *Provider) GetLayout() *layout.LayoutOptions {
	return layout.New(p.appConfig.Layout).GetOptions()
}

// GetChainHead 获取模拟链头配置
// 配置在加载时已通过 Validate 校验，这里的错误只会来自未校验的手工构造
func (p *Provider) GetChainHead() *chainhead.ChainHeadOptions {
	cfg, err := chainhead.New(p.appConfig.ChainHead)
	if err != nil {
		fallback, _ := chainhead.New(nil)
		return fallback.GetOptions()
	}
	return cfg.GetOptions()
}

// GetEnvironment 获取运行环境；未配置或非法值时为 dev
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil {
		return "dev"
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case "dev", "test", "prod":
		return env
	default:
		return "dev"
	}
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// LoadAppConfig 从 JSON 文件加载应用配置并校验
// path 为空时返回空配置（全部使用默认值）
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	appConfig, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return appConfig, nil
}

// ParseAppConfig 解析 JSON 配置内容并校验
func ParseAppConfig(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := Validate(&appConfig); err != nil {
		return nil, err
	}
	return &appConfig, nil
}

// appOptions 以固定 AppConfig 实现 config.AppOptions
type appOptions struct {
	appConfig *types.AppConfig
}

// NewAppOptions 包装已加载的应用配置，供 fx 注入
func NewAppOptions(appConfig *types.AppConfig) config.AppOptions {
	return &appOptions{appConfig: appConfig}
}

// GetAppConfig 获取应用配置
func (o *appOptions) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
