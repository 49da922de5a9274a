package layout

import (
	"github.com/weisyn/slotlayout/pkg/types"
)

// LayoutOptions 存储布局解析配置选项
type LayoutOptions struct {
	// MaxDepth 解析递归深度上限，超过后以 DepthLimitExceeded 失败
	MaxDepth int `json:"max_depth"`

	// BareIntegerWidth 裸关键字 uint/int 的位宽
	BareIntegerWidth int `json:"bare_integer_width"`

	// ClampSingleEnum 只有一个取值的枚举是否按 1 字节计（否则为 0 字节）
	ClampSingleEnum bool `json:"clamp_single_enum"`

	// ASTPath 启动时加载的 solc AST / 声明表文件，空表示空声明表
	ASTPath string `json:"ast_path"`
}

// Config 存储布局解析配置实现
type Config struct {
	options *LayoutOptions
}

// New 创建存储布局解析配置
func New(userConfig *types.UserLayoutConfig) *Config {
	options := createDefaultLayoutOptions()
	if userConfig != nil {
		applyUserLayoutConfig(options, userConfig)
	}
	return &Config{options: options}
}

// createDefaultLayoutOptions 创建默认配置
func createDefaultLayoutOptions() *LayoutOptions {
	return &LayoutOptions{
		MaxDepth:         defaultMaxDepth,
		BareIntegerWidth: defaultBareIntegerWidth,
		ClampSingleEnum:  defaultClampSingleEnum,
	}
}

// applyUserLayoutConfig 应用用户配置；非法值保持默认
func applyUserLayoutConfig(options *LayoutOptions, userConfig *types.UserLayoutConfig) {
	if userConfig.MaxDepth != nil && *userConfig.MaxDepth >= minMaxDepth {
		options.MaxDepth = *userConfig.MaxDepth
	}
	if userConfig.BareIntegerWidth != nil && isValidIntegerWidth(*userConfig.BareIntegerWidth) {
		options.BareIntegerWidth = *userConfig.BareIntegerWidth
	}
	if userConfig.ClampSingleEnum != nil {
		options.ClampSingleEnum = *userConfig.ClampSingleEnum
	}
	if userConfig.ASTPath != nil {
		options.ASTPath = *userConfig.ASTPath
	}
}

// isValidIntegerWidth 8 的倍数且位于 [8, 256]
func isValidIntegerWidth(bits int) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *LayoutOptions {
	return c.options
}
