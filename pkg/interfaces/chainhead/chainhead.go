// Package chainhead 定义模拟链头的查询与控制接口
package chainhead

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/slotlayout/pkg/types"
)

// 链头状态变更事件
const (
	// EventBlockAdvanced 区块计数增加，参数 (previous, current uint64)
	EventBlockAdvanced event.EventType = "chainhead.block_advanced"
	// EventCoinbaseChanged coinbase 变更，参数 (previous, current common.Address)
	EventCoinbaseChanged event.EventType = "chainhead.coinbase_changed"
)

var (
	// ErrBlockNotFound 请求的区块高于当前计数
	ErrBlockNotFound = errors.New("block not found")
	// ErrBlockNumberDecrease 区块计数不允许回退
	ErrBlockNumberDecrease = errors.New("block number cannot decrease")
)

// Reader 链头只读查询
type Reader interface {
	// GetBlockByNumber 返回指定高度的占位区块
	GetBlockByNumber(ctx context.Context, number uint64) (*types.MockBlock, error)
	// GasPrice 返回固定 gas 价格
	GasPrice(ctx context.Context) (*big.Int, error)
	// Coinbase 返回当前配置的 coinbase
	Coinbase(ctx context.Context) (common.Address, error)
	// BlockNumber 返回当前区块计数
	BlockNumber(ctx context.Context) (uint64, error)
	// ChainID 返回链ID
	ChainID(ctx context.Context) (*big.Int, error)
}

// Controller 链头可变状态控制（仅开发用途）
type Controller interface {
	Reader

	SetCoinbase(ctx context.Context, addr common.Address) error
	// SetBlockNumber 设置区块计数；计数只增不减
	SetBlockNumber(ctx context.Context, number uint64) error
	// Mine 区块计数加一并返回新值
	Mine(ctx context.Context) (uint64, error)
}
