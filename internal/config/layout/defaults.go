package layout

// 存储布局解析默认配置值
const (
	// defaultMaxDepth 递归深度上限；真实合约中的嵌套很少超过 10 层
	defaultMaxDepth = 64

	// defaultBareIntegerWidth 裸 uint/int 按 256 位处理（Solidity 语义）
	defaultBareIntegerWidth = 256

	// defaultClampSingleEnum 单值枚举按 1 字节计
	defaultClampSingleEnum = true

	// minMaxDepth 深度上限下限：至少允许一层复合类型
	minMaxDepth = 1
)
