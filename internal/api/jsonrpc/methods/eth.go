package methods

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"go.uber.org/zap"
)

// EthMethods 以太坊兼容的只读链头查询
type EthMethods struct {
	logger *zap.Logger
	reader chainhead.Reader
}

// NewEthMethods 创建链头查询方法
func NewEthMethods(logger *zap.Logger, reader chainhead.Reader) *EthMethods {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EthMethods{logger: logger, reader: reader}
}

// Handlers 方法名到处理函数的映射
func (m *EthMethods) Handlers() map[string]Handler {
	return map[string]Handler{
		"eth_getBlockByNumber": m.GetBlockByNumber,
		"eth_gasPrice":         m.GasPrice,
		"eth_coinbase":         m.Coinbase,
		"eth_blockNumber":      m.BlockNumber,
		"eth_chainId":          m.ChainID,
	}
}

// GetBlockByNumber 返回占位区块
// Method: eth_getBlockByNumber
// 参数：[区块标签或十六进制高度, fullTx(可选，忽略)]
// 返回：区块对象；高于当前计数时返回 null
func (m *EthMethods) GetBlockByNumber(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args, err := positional(params, 1, 2)
	if err != nil {
		return nil, err
	}

	var tag rpc.BlockNumber
	if err := decodeArg(args[0], 0, &tag); err != nil {
		return nil, err
	}
	if len(args) == 2 {
		var fullTx bool
		if err := decodeArg(args[1], 1, &fullTx); err != nil {
			return nil, err
		}
	}

	number, err := m.resolveTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	block, err := m.reader.GetBlockByNumber(ctx, number)
	if errors.Is(err, chainhead.ErrBlockNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return block, nil
}

// resolveTag 标签映射：earliest 为 0，其余标签都指向当前计数
func (m *EthMethods) resolveTag(ctx context.Context, tag rpc.BlockNumber) (uint64, error) {
	switch tag {
	case rpc.EarliestBlockNumber:
		return 0, nil
	case rpc.LatestBlockNumber, rpc.PendingBlockNumber, rpc.SafeBlockNumber, rpc.FinalizedBlockNumber:
		current, err := m.reader.BlockNumber(ctx)
		if err != nil {
			return 0, NewInternalError(err.Error(), nil)
		}
		return current, nil
	}
	if tag < 0 {
		return 0, NewInvalidParamsError("unsupported block tag", map[string]interface{}{"tag": tag.String()})
	}
	return uint64(tag), nil
}

// GasPrice 固定 gas 价格
// Method: eth_gasPrice
func (m *EthMethods) GasPrice(ctx context.Context, params json.RawMessage) (interface{}, error) {
	price, err := m.reader.GasPrice(ctx)
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return (*hexutil.Big)(price), nil
}

// Coinbase 当前 coinbase
// Method: eth_coinbase
func (m *EthMethods) Coinbase(ctx context.Context, params json.RawMessage) (interface{}, error) {
	addr, err := m.reader.Coinbase(ctx)
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return addr, nil
}

// BlockNumber 当前区块计数（十六进制）
// Method: eth_blockNumber
func (m *EthMethods) BlockNumber(ctx context.Context, params json.RawMessage) (interface{}, error) {
	number, err := m.reader.BlockNumber(ctx)
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return hexutil.Uint64(number), nil
}

// ChainID 链ID
// Method: eth_chainId
func (m *EthMethods) ChainID(ctx context.Context, params json.RawMessage) (interface{}, error) {
	id, err := m.reader.ChainID(ctx)
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return (*hexutil.Big)(id), nil
}
