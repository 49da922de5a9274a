package event

import (
	"context"

	"github.com/weisyn/slotlayout/internal/core/infrastructure/log"
	eventInterface "github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger    *zap.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建事件总线，停止时等待异步订阅者处理完
func ProvideServices(input ModuleInput) ModuleOutput {
	bus := New(log.NewModuleZapLogger(input.Logger, "event"))

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			bus.WaitAsync()
			return nil
		},
	})

	return ModuleOutput{EventBus: bus}
}
