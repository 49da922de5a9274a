package methods

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"go.uber.org/zap"
)

// DevMethods 开发用的链头状态控制
type DevMethods struct {
	logger     *zap.Logger
	controller chainhead.Controller
}

// NewDevMethods 创建链头控制方法
func NewDevMethods(logger *zap.Logger, controller chainhead.Controller) *DevMethods {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DevMethods{logger: logger, controller: controller}
}

// Handlers 方法名到处理函数的映射
func (m *DevMethods) Handlers() map[string]Handler {
	return map[string]Handler{
		"dev_setCoinbase":    m.SetCoinbase,
		"dev_setBlockNumber": m.SetBlockNumber,
		"evm_mine":           m.Mine,
	}
}

// SetCoinbase 设置 coinbase
// Method: dev_setCoinbase
// 参数：[0x 前缀地址]
func (m *DevMethods) SetCoinbase(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args, err := positional(params, 1, 1)
	if err != nil {
		return nil, err
	}
	var raw string
	if err := decodeArg(args[0], 0, &raw); err != nil {
		return nil, err
	}
	if !common.IsHexAddress(raw) {
		return nil, NewInvalidParamsError("invalid address", map[string]interface{}{"address": raw})
	}

	addr := common.HexToAddress(raw)
	if err := m.controller.SetCoinbase(ctx, addr); err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return addr, nil
}

// SetBlockNumber 设置区块计数（只增不减）
// Method: dev_setBlockNumber
// 参数：[十六进制高度]
func (m *DevMethods) SetBlockNumber(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args, err := positional(params, 1, 1)
	if err != nil {
		return nil, err
	}
	var number hexutil.Uint64
	if err := decodeArg(args[0], 0, &number); err != nil {
		return nil, err
	}

	err = m.controller.SetBlockNumber(ctx, uint64(number))
	if errors.Is(err, chainhead.ErrBlockNumberDecrease) {
		current, _ := m.controller.BlockNumber(ctx)
		return nil, NewBlockNumberDecreaseError(current, uint64(number))
	}
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return number, nil
}

// Mine 区块计数加一
// Method: evm_mine
// 返回：新的区块计数（十六进制）
func (m *DevMethods) Mine(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if _, err := positional(params, 0, 1); err != nil {
		return nil, err
	}
	number, err := m.controller.Mine(ctx)
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	return hexutil.Uint64(number), nil
}
