// Package event 基于 asaskevich/EventBus 的事件总线实现
package event

import (
	"sync/atomic"

	evbus "github.com/asaskevich/EventBus"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
	"go.uber.org/zap"
)

// EventBus 对 asaskevich/EventBus 的薄封装，附带发布计数与日志
type EventBus struct {
	bus    evbus.Bus
	logger *zap.Logger

	published atomic.Uint64
}

// New 创建事件总线
func New(logger *zap.Logger) *EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBus{
		bus:    evbus.New(),
		logger: logger,
	}
}

var _ event.EventBus = (*EventBus)(nil)

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	eb.published.Add(1)
	if ce := eb.logger.Check(zap.DebugLevel, "发布事件"); ce != nil {
		ce.Write(zap.String("type", string(eventType)), zap.Int("args", len(args)))
	}
	eb.bus.Publish(string(eventType), args...)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// HasCallback 是否存在订阅者
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// Published 已发布事件总数
func (eb *EventBus) Published() uint64 {
	return eb.published.Load()
}
