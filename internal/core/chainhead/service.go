// Package chainhead 模拟只读链头
//
// 对外只回答固定形状的查询：占位区块、固定 gas 价格、coinbase 与区块计数。
// 可变状态只有 coinbase 和区块计数，由读写锁保护。
package chainhead

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	chainheadconfig "github.com/weisyn/slotlayout/internal/config/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/slotlayout/pkg/types"
	"go.uber.org/zap"
)

// 占位区块的固定字段
const (
	blockDifficulty    = 1
	blockSize          = 0x3e8
	blockGasLimit      = 30_000_000
	blockTimeBase      = 1_700_000_000
	blockTimeInterval  = 12
	blockHashNamespace = "slotlayout/mock-block"
)

// Service 模拟链头
type Service struct {
	mu          sync.RWMutex
	coinbase    common.Address
	blockNumber uint64

	gasPrice *big.Int
	chainID  *big.Int

	bus    event.EventBus
	logger *zap.Logger
}

var _ chainhead.Controller = (*Service)(nil)

// New 创建模拟链头；bus 可为 nil
func New(options *chainheadconfig.ChainHeadOptions, bus event.EventBus, logger *zap.Logger) *Service {
	if options == nil {
		cfg, _ := chainheadconfig.New(nil)
		options = cfg.GetOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		coinbase:    options.Coinbase,
		blockNumber: options.BlockNumber,
		gasPrice:    new(big.Int).SetUint64(options.GasPrice),
		chainID:     new(big.Int).SetUint64(options.ChainID),
		bus:         bus,
		logger:      logger,
	}
}

// GetBlockByNumber 返回占位区块；高于当前计数时返回 ErrBlockNotFound
func (s *Service) GetBlockByNumber(ctx context.Context, number uint64) (*types.MockBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	current, miner := s.blockNumber, s.coinbase
	s.mu.RUnlock()

	if number > current {
		return nil, chainhead.ErrBlockNotFound
	}
	return buildBlock(number, miner), nil
}

// GasPrice 固定 gas 价格
func (s *Service) GasPrice(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(s.gasPrice), ctx.Err()
}

// ChainID 链ID
func (s *Service) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(s.chainID), ctx.Err()
}

// Coinbase 当前 coinbase
func (s *Service) Coinbase(ctx context.Context) (common.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coinbase, ctx.Err()
}

// BlockNumber 当前区块计数
func (s *Service) BlockNumber(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blockNumber, ctx.Err()
}

// SetCoinbase 设置 coinbase
func (s *Service) SetCoinbase(ctx context.Context, addr common.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	previous := s.coinbase
	s.coinbase = addr
	s.mu.Unlock()

	if previous != addr {
		s.logger.Info("coinbase 已更新",
			zap.String("previous", previous.Hex()),
			zap.String("current", addr.Hex()))
		s.publish(chainhead.EventCoinbaseChanged, previous, addr)
	}
	return nil
}

// SetBlockNumber 设置区块计数，不允许回退
func (s *Service) SetBlockNumber(ctx context.Context, number uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	previous := s.blockNumber
	if number < previous {
		s.mu.Unlock()
		return chainhead.ErrBlockNumberDecrease
	}
	s.blockNumber = number
	s.mu.Unlock()

	if number != previous {
		s.publish(chainhead.EventBlockAdvanced, previous, number)
	}
	return nil
}

// Mine 区块计数加一
func (s *Service) Mine(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	previous := s.blockNumber
	s.blockNumber++
	current := s.blockNumber
	s.mu.Unlock()

	s.logger.Debug("出块", zap.Uint64("number", current))
	s.publish(chainhead.EventBlockAdvanced, previous, current)
	return current, nil
}

func (s *Service) publish(eventType event.EventType, args ...interface{}) {
	if s.bus != nil {
		s.bus.Publish(eventType, args...)
	}
}

// blockHash 区块哈希只由高度决定
func blockHash(number uint64) common.Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], number)
	return crypto.Keccak256Hash([]byte(blockHashNamespace), buf[:])
}

// buildBlock 构建占位区块：空交易与叔块，空树根，固定难度与大小
func buildBlock(number uint64, miner common.Address) *types.MockBlock {
	var parent common.Hash
	if number > 0 {
		parent = blockHash(number - 1)
	}

	return &types.MockBlock{
		Number:           hexutil.Uint64(number),
		Hash:             blockHash(number),
		ParentHash:       parent,
		Nonce:            ethtypes.BlockNonce{},
		Sha3Uncles:       ethtypes.EmptyUncleHash,
		LogsBloom:        ethtypes.Bloom{},
		TransactionsRoot: ethtypes.EmptyTxsHash,
		StateRoot:        ethtypes.EmptyRootHash,
		ReceiptsRoot:     ethtypes.EmptyReceiptsHash,
		Miner:            miner,
		Difficulty:       (*hexutil.Big)(big.NewInt(blockDifficulty)),
		TotalDifficulty:  (*hexutil.Big)(new(big.Int).SetUint64(number + 1)),
		ExtraData:        hexutil.Bytes{},
		Size:             hexutil.Uint64(blockSize),
		GasLimit:         hexutil.Uint64(blockGasLimit),
		GasUsed:          0,
		Timestamp:        hexutil.Uint64(blockTimeBase + number*blockTimeInterval),
		Transactions:     []common.Hash{},
		Uncles:           []common.Hash{},
	}
}
