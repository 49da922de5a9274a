package api

import "time"

// API服务默认配置值
const (
	// === HTTP API配置 ===

	defaultHTTPEnabled = true

	// defaultHTTPHost 默认只监听本机；模拟链头不应对外暴露
	defaultHTTPHost = "127.0.0.1"

	// defaultHTTPPort 与常见开发链的 JSON-RPC 端口一致
	defaultHTTPPort = 8545

	defaultHTTPEnableJSONRPC = true
	defaultHTTPEnableMetrics = true

	defaultHTTPReadTimeout  = 15 * time.Second
	defaultHTTPWriteTimeout = 15 * time.Second
	defaultHTTPIdleTimeout  = 60 * time.Second

	// defaultMaxRequestSize 最大请求大小 1MB
	defaultMaxRequestSize = 1 << 20

	// defaultRateLimitRPS 每个客户端IP的请求速率(次/秒)；0 表示不限流
	defaultRateLimitRPS = 200

	// defaultRateLimitBurst 令牌桶容量
	defaultRateLimitBurst = 50

	// defaultLayoutCacheMB layout_resolveType 响应缓存上限(MB)
	defaultLayoutCacheMB = 16

	// defaultLayoutCacheLifeWindow 缓存条目存活时间
	defaultLayoutCacheLifeWindow = 10 * time.Minute
)
