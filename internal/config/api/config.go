package api

import (
	"time"

	"github.com/weisyn/slotlayout/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	// HTTP API配置
	HTTP HTTPConfig `json:"http"`

	// LayoutCache layout_resolveType 响应缓存配置
	LayoutCache LayoutCacheConfig `json:"layout_cache"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务（总开关）
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口

	EnableJSONRPC bool `json:"enable_jsonrpc"` // 是否启用JSON-RPC（/ 与 /jsonrpc）
	EnableMetrics bool `json:"enable_metrics"` // 是否暴露 /metrics

	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`

	MaxRequestSize int `json:"max_request_size"` // 最大请求大小(字节)

	RateLimitRPS   float64 `json:"rate_limit_rps"`   // 每IP请求速率，0 表示不限流
	RateLimitBurst int     `json:"rate_limit_burst"` // 令牌桶容量
}

// LayoutCacheConfig 解析结果缓存配置
type LayoutCacheConfig struct {
	HardMaxCacheSizeMB int           `json:"hard_max_cache_size_mb"` // 0 表示禁用缓存
	LifeWindow         time.Duration `json:"life_window"`
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *types.UserAPIConfig) *Config {
	defaultOptions := createDefaultAPIOptions()

	if userConfig != nil {
		convertAndMergeUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultAPIOptions 创建默认API配置
func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:        defaultHTTPEnabled,
			Host:           defaultHTTPHost,
			Port:           defaultHTTPPort,
			EnableJSONRPC:  defaultHTTPEnableJSONRPC,
			EnableMetrics:  defaultHTTPEnableMetrics,
			ReadTimeout:    defaultHTTPReadTimeout,
			WriteTimeout:   defaultHTTPWriteTimeout,
			IdleTimeout:    defaultHTTPIdleTimeout,
			MaxRequestSize: defaultMaxRequestSize,
			RateLimitRPS:   defaultRateLimitRPS,
			RateLimitBurst: defaultRateLimitBurst,
		},
		LayoutCache: LayoutCacheConfig{
			HardMaxCacheSizeMB: defaultLayoutCacheMB,
			LifeWindow:         defaultLayoutCacheLifeWindow,
		},
	}
}

// convertAndMergeUserConfig 将用户配置合并到默认配置中
// 指针为 nil 表示用户未设置，保持默认值
func convertAndMergeUserConfig(defaultOpts *APIOptions, userConfig *types.UserAPIConfig) {
	if userConfig.HTTPEnabled != nil {
		defaultOpts.HTTP.Enabled = *userConfig.HTTPEnabled
	}
	if userConfig.HTTPHost != nil && *userConfig.HTTPHost != "" {
		defaultOpts.HTTP.Host = *userConfig.HTTPHost
	}
	if userConfig.HTTPPort != nil {
		defaultOpts.HTTP.Port = *userConfig.HTTPPort
	}
	if userConfig.HTTPEnableJSONRPC != nil {
		defaultOpts.HTTP.EnableJSONRPC = *userConfig.HTTPEnableJSONRPC
	}
	if userConfig.HTTPEnableMetrics != nil {
		defaultOpts.HTTP.EnableMetrics = *userConfig.HTTPEnableMetrics
	}
	if userConfig.MaxRequestSize != nil && *userConfig.MaxRequestSize > 0 {
		defaultOpts.HTTP.MaxRequestSize = *userConfig.MaxRequestSize
	}
	if userConfig.RateLimitRPS != nil && *userConfig.RateLimitRPS >= 0 {
		defaultOpts.HTTP.RateLimitRPS = *userConfig.RateLimitRPS
	}
	if userConfig.RateLimitBurst != nil && *userConfig.RateLimitBurst > 0 {
		defaultOpts.HTTP.RateLimitBurst = *userConfig.RateLimitBurst
	}
	if userConfig.LayoutCacheMB != nil && *userConfig.LayoutCacheMB >= 0 {
		defaultOpts.LayoutCache.HardMaxCacheSizeMB = *userConfig.LayoutCacheMB
	}
}

// GetOptions 获取API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
