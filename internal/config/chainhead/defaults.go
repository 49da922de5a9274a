package chainhead

// 模拟链头默认配置值
const (
	// defaultCoinbase 默认 coinbase 为零地址
	defaultCoinbase = "0x0000000000000000000000000000000000000000"

	// defaultBlockNumber 初始区块号
	defaultBlockNumber uint64 = 0

	// defaultGasPrice 固定 gas 价格：1 wei
	defaultGasPrice uint64 = 1

	// defaultChainID 本地开发链ID
	defaultChainID uint64 = 1337
)
