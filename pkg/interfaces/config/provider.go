// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/slotlayout/internal/config/api"
	chainheadconfig "github.com/weisyn/slotlayout/internal/config/chainhead"
	layoutconfig "github.com/weisyn/slotlayout/internal/config/layout"
	logconfig "github.com/weisyn/slotlayout/internal/config/log"
	"github.com/weisyn/slotlayout/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLayout 获取存储布局解析配置
	GetLayout() *layoutconfig.LayoutOptions

	// GetChainHead 获取模拟链头配置
	GetChainHead() *chainheadconfig.ChainHeadOptions

	// GetEnvironment 获取运行环境：dev | test | prod
	GetEnvironment() string

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
