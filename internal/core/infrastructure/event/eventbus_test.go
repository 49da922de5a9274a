package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/slotlayout/pkg/interfaces/infrastructure/event"
)

func TestEventBus(t *testing.T) {
	eventBus := New(nil)

	t.Run("同步订阅", func(t *testing.T) {
		var received string
		handler := func(data string) {
			received = data
		}

		require.NoError(t, eventBus.Subscribe(event.EventType("test-event"), handler))
		assert.True(t, eventBus.HasCallback(event.EventType("test-event")))

		eventBus.Publish(event.EventType("test-event"), "hello world")
		assert.Equal(t, "hello world", received)

		require.NoError(t, eventBus.Unsubscribe(event.EventType("test-event"), handler))
		received = ""
		eventBus.Publish(event.EventType("test-event"), "should not receive")
		assert.Empty(t, received)
	})

	t.Run("异步订阅", func(t *testing.T) {
		var mu sync.Mutex
		var received []uint64
		handler := func(prev, next uint64) {
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			received = append(received, next)
			mu.Unlock()
		}

		require.NoError(t, eventBus.SubscribeAsync(event.EventType("async-event"), handler, true))
		eventBus.Publish(event.EventType("async-event"), uint64(0), uint64(1))
		eventBus.Publish(event.EventType("async-event"), uint64(1), uint64(2))
		eventBus.WaitAsync()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []uint64{1, 2}, received)
	})

	t.Run("未订阅的事件", func(t *testing.T) {
		assert.False(t, eventBus.HasCallback(event.EventType("nobody")))
		assert.Error(t, eventBus.Unsubscribe(event.EventType("nobody"), func() {}))
	})

	assert.Equal(t, uint64(4), eventBus.Published())
}
