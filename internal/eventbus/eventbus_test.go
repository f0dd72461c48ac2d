package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []*Envelope
}

func (c *collector) handle(ctx context.Context, ev *Envelope) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.EventType)
	}
	return out
}

func TestNewEnvelope(t *testing.T) {
	ev, err := NewEnvelope(SourceWorld, EventTickCompleted, 2, TickPayload{Tick: 7, Nits: 3})
	require.NoError(t, err)

	assert.Len(t, ev.ID, 36, "ID — строковый UUID")
	assert.Equal(t, SourceWorld, ev.Source)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, 2, ev.Priority)
	assert.False(t, ev.Timestamp.IsZero())

	var payload TickPayload
	require.NoError(t, ev.Decode(&payload))
	assert.Equal(t, TickPayload{Tick: 7, Nits: 3}, payload)

	other, err := NewEnvelope(SourceWorld, EventTickCompleted, 2, nil)
	require.NoError(t, err)
	assert.NotEqual(t, ev.ID, other.ID)

	_, err = NewEnvelope(SourceWorld, "Broken", 0, make(chan int))
	assert.Error(t, err)
}

func TestMatchFilter(t *testing.T) {
	ev := &Envelope{EventType: EventNitDied, Source: SourceWorld}

	assert.True(t, matchFilter(ev, Filter{}))
	assert.True(t, matchFilter(ev, Filter{Types: []string{EventPathFailed, EventNitDied}}))
	assert.False(t, matchFilter(ev, Filter{Types: []string{EventPathFailed}}))
	assert.False(t, matchFilter(ev, Filter{Sources: []string{"scheduler"}}))
}

func TestMemoryBus_Delivery(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(16)

	all, deaths := &collector{}, &collector{}
	_, err := bus.Subscribe(ctx, Filter{}, all.handle)
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, Filter{Types: []string{EventNitDied}}, deaths.handle)
	require.NoError(t, err)

	for _, typ := range []string{EventAttackResolved, EventNitDied, EventPathFailed} {
		ev, err := NewEnvelope(SourceWorld, typ, 5, nil)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, ev))
	}
	require.NoError(t, bus.Close(), "Close дожидается доставки буфера")

	assert.ElementsMatch(t, []string{EventAttackResolved, EventNitDied, EventPathFailed}, all.types())
	assert.Equal(t, []string{EventNitDied}, deaths.types())

	stats := bus.Metrics()
	assert.Equal(t, uint64(3), stats.Published)
	assert.Equal(t, uint64(4), stats.Consumed)
	assert.Equal(t, 0, stats.InFlight)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(4)
	c := &collector{}
	sub, err := bus.Subscribe(ctx, Filter{}, c.handle)
	require.NoError(t, err)
	sub.Unsubscribe()

	ev, err := NewEnvelope(SourceWorld, EventNitDied, 7, nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, ev))
	require.NoError(t, bus.Close())

	assert.Empty(t, c.types())
}

func TestMemoryBus_Closed(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())
	assert.NoError(t, bus.Close(), "Повторное закрытие безопасно")

	ev, err := NewEnvelope(SourceWorld, EventNitDied, 7, nil)
	require.NoError(t, err)
	assert.Error(t, bus.Publish(context.Background(), ev))
	_, err = bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {})
	assert.Error(t, err)
}

func TestStartLoggingListener(t *testing.T) {
	bus := NewMemoryBus(4)
	sub, err := StartLoggingListener(context.Background(), bus)
	require.NoError(t, err)
	require.NotNil(t, sub)

	ev, err := NewEnvelope(SourceWorld, EventTickCompleted, 0, TickPayload{Tick: 1})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), ev))
	require.NoError(t, bus.Close())
	assert.Equal(t, uint64(1), bus.Metrics().Consumed)
}
