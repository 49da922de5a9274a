package chainhead

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/interfaces/config"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 模拟链头模块依赖
type ModuleParams struct {
	fx.In

	Provider config.Provider
	EventBus event.EventBus `optional:"true"`
	Logger   *zap.Logger    `optional:"true"`
}

// ModuleOutput 模拟链头模块输出
type ModuleOutput struct {
	fx.Out

	Service    *Service
	Reader     chainhead.Reader
	Controller chainhead.Controller
}

// Module 返回模拟链头模块
func Module() fx.Option {
	return fx.Module("chainhead",
		fx.Provide(ProvideServices),
		fx.Invoke(SubscribeAuditLog),
	)
}

// AuditParams 链头事件审计日志依赖
type AuditParams struct {
	fx.In

	EventBus event.EventBus `optional:"true"`
	Logger   *zap.Logger    `optional:"true"`
}

// SubscribeAuditLog 将链头状态变化写入日志；没有事件总线时跳过
func SubscribeAuditLog(params AuditParams) error {
	if params.EventBus == nil {
		return nil
	}
	logger := log.NewModuleZapLogger(params.Logger, "chainhead")

	if err := params.EventBus.SubscribeAsync(chainhead.EventBlockAdvanced, func(prev, next uint64) {
		logger.Info("区块计数已推进", zap.Uint64("from", prev), zap.Uint64("to", next))
	}, true); err != nil {
		return err
	}
	return params.EventBus.SubscribeAsync(chainhead.EventCoinbaseChanged, func(prev, next common.Address) {
		logger.Info("coinbase 已更新", zap.Stringer("from", prev), zap.Stringer("to", next))
	}, true)
}

// ProvideServices 根据配置创建模拟链头
func ProvideServices(params ModuleParams) ModuleOutput {
	options := params.Provider.GetChainHead()
	logger := log.NewModuleZapLogger(params.Logger, "chainhead")

	svc := New(options, params.EventBus, logger)
	logger.Info("模拟链头已就绪",
		zap.String("coinbase", options.Coinbase.Hex()),
		zap.Uint64("block_number", options.BlockNumber),
		zap.Uint64("chain_id", options.ChainID))

	return ModuleOutput{
		Service:    svc,
		Reader:     svc,
		Controller: svc,
	}
}
