package types

// AppConfig 应用配置根结构
// 所有字段都是指针或可空类型，用于区分"未设置"和"设置为零值"
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// 存储布局解析配置
	Layout *UserLayoutConfig `json:"layout,omitempty"`

	// 模拟链头配置
	ChainHead *UserChainHeadConfig `json:"chain_head,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径，或 stdout / stderr
	ToConsole *bool   `json:"to_console,omitempty"` // 写文件时是否同时输出到终端
	Caller    *bool   `json:"caller,omitempty"`     // 是否记录调用位置
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	HTTPEnabled       *bool    `json:"http_enabled,omitempty"`        // 是否启用HTTP服务（默认true）
	HTTPHost          *string  `json:"http_host,omitempty"`           // HTTP监听地址
	HTTPPort          *int     `json:"http_port,omitempty"`           // HTTP监听端口
	HTTPEnableJSONRPC *bool    `json:"http_enable_jsonrpc,omitempty"` // 是否启用JSON-RPC（默认true）
	HTTPEnableMetrics *bool    `json:"http_enable_metrics,omitempty"` // 是否暴露 /metrics
	MaxRequestSize    *int     `json:"max_request_size,omitempty"`    // 最大请求体(字节)
	LayoutCacheMB     *int     `json:"layout_cache_mb,omitempty"`     // layout_resolveType 响应缓存上限(MB)
	RateLimitRPS      *float64 `json:"rate_limit_rps,omitempty"`      // 每IP请求速率，0 关闭限流
	RateLimitBurst    *int     `json:"rate_limit_burst,omitempty"`    // 令牌桶容量
}

// UserLayoutConfig 用户存储布局解析配置
type UserLayoutConfig struct {
	MaxDepth         *int    `json:"max_depth,omitempty"`          // 递归深度上限
	BareIntegerWidth *int    `json:"bare_integer_width,omitempty"` // 裸 uint/int 的位宽
	ClampSingleEnum  *bool   `json:"clamp_single_enum,omitempty"`  // 单值枚举是否按 1 字节计
	ASTPath          *string `json:"ast_path,omitempty"`           // solc AST / 声明表 JSON 文件
}

// UserChainHeadConfig 用户模拟链头配置
type UserChainHeadConfig struct {
	Coinbase    *string `json:"coinbase,omitempty"`     // 0x 前缀的 20 字节地址
	BlockNumber *uint64 `json:"block_number,omitempty"` // 初始区块号
	GasPrice    *uint64 `json:"gas_price,omitempty"`    // 固定 gas 价格(wei)
	ChainID     *uint64 `json:"chain_id,omitempty"`     // 链ID
}

// 配置辅助函数
// 这些函数帮助创建指针类型的配置值，区分"未设置"和"设置为零值"

// BoolPtr 创建bool指针
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 创建int指针
func IntPtr(v int) *int {
	return &v
}

// StringPtr 创建string指针
func StringPtr(v string) *string {
	return &v
}

// UInt64Ptr 创建uint64指针
func UInt64Ptr(v uint64) *uint64 {
	return &v
}
