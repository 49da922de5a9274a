package chainhead

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weisyn/slotlayout/pkg/types"
)

// ChainHeadOptions 模拟链头配置选项
type ChainHeadOptions struct {
	Coinbase    common.Address `json:"coinbase"`
	BlockNumber uint64         `json:"block_number"`
	GasPrice    uint64         `json:"gas_price"`
	ChainID     uint64         `json:"chain_id"`
}

// Config 模拟链头配置实现
type Config struct {
	options *ChainHeadOptions
}

// New 创建模拟链头配置；coinbase 格式非法时返回错误
func New(userConfig *types.UserChainHeadConfig) (*Config, error) {
	options := &ChainHeadOptions{
		Coinbase:    common.HexToAddress(defaultCoinbase),
		BlockNumber: defaultBlockNumber,
		GasPrice:    defaultGasPrice,
		ChainID:     defaultChainID,
	}

	if userConfig != nil {
		if userConfig.Coinbase != nil {
			if !common.IsHexAddress(*userConfig.Coinbase) {
				return nil, fmt.Errorf("invalid coinbase address %q", *userConfig.Coinbase)
			}
			options.Coinbase = common.HexToAddress(*userConfig.Coinbase)
		}
		if userConfig.BlockNumber != nil {
			options.BlockNumber = *userConfig.BlockNumber
		}
		if userConfig.GasPrice != nil && *userConfig.GasPrice > 0 {
			options.GasPrice = *userConfig.GasPrice
		}
		if userConfig.ChainID != nil && *userConfig.ChainID > 0 {
			options.ChainID = *userConfig.ChainID
		}
	}

	return &Config{options: options}, nil
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *ChainHeadOptions {
	return c.options
}
