package events

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBus() *Bus {
	return NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := newTestBus()

	var got []string
	bus.Subscribe(func(e Event) { got = append(got, "first:"+string(e.Type)) })
	bus.Subscribe(func(e Event) { got = append(got, "second:"+string(e.Type)) })

	bus.Emit(OperationQueued, time.Now(), "op-1")

	assert.Equal(t, []string{"first:operation-queued", "second:operation-queued"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := newTestBus()

	count := 0
	unsubscribe := bus.Subscribe(func(Event) { count++ })

	bus.Emit(DataUpdated, time.Now(), nil)
	unsubscribe()
	unsubscribe()
	bus.Emit(DataUpdated, time.Now(), nil)

	assert.Equal(t, 1, count)
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := newTestBus()

	delivered := false
	bus.Subscribe(func(Event) { panic("boom") })
	bus.Subscribe(func(Event) { delivered = true })

	assert.NotPanics(t, func() {
		bus.Emit(CacheCleared, time.Now(), nil)
	})
	assert.True(t, delivered)
}

func TestBus_EventCarriesTimestampAndPayload(t *testing.T) {
	bus := newTestBus()
	ts := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	var got Event
	bus.Subscribe(func(e Event) { got = e })
	bus.Emit(OrderSynced, ts, map[string]string{"server_id": "42"})

	assert.Equal(t, OrderSynced, got.Type)
	assert.Equal(t, ts, got.Timestamp)
	assert.Equal(t, map[string]string{"server_id": "42"}, got.Payload)
}
