// Package event 定义事件总线接口
package event

// EventType 事件类型（主题名）
type EventType string

// EventBus 进程内事件总线
//
// handler 为任意函数，参数需与 Publish 传入的参数一一对应。
type EventBus interface {
	// Subscribe 同步订阅
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅；transactional 为 true 时同一订阅者串行处理
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// HasCallback 是否存在订阅者
	HasCallback(eventType EventType) bool
	// WaitAsync 等待异步处理完成
	WaitAsync()
}
