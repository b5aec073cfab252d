package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	redisclient "github.com/mediqueue/backend/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBus(t *testing.T) providers.EventBus {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	bus := NewRedisEventBus(redisclient.NewClientFromRedis(client))
	t.Cleanup(func() {
		_ = bus.Close()
		_ = client.Close()
	})
	return bus
}

func receive(t *testing.T, ch <-chan *entities.FacilityEvent) *entities.FacilityEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed before an event arrived")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func assertClosed(t *testing.T, ch <-chan *entities.FacilityEvent) {
	t.Helper()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestEventBuses_PublishSubscribe(t *testing.T) {
	buses := map[string]func(t *testing.T) providers.EventBus{
		"memory": func(t *testing.T) providers.EventBus { return NewMemoryEventBus() },
		"redis":  newRedisBus,
	}

	for name, newBus := range buses {
		t.Run(name, func(t *testing.T) {
			bus := newBus(t)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			events, err := bus.Subscribe(ctx, providers.EventChannelFacilityUpdates)
			require.NoError(t, err)

			published := entities.NewFacilityEvent("icu", entities.FacilityEventTypeWardCapacityUpdate,
				entities.Location{}, map[string]interface{}{"occupied": 19})
			require.NoError(t, bus.Publish(ctx, providers.EventChannelFacilityUpdates, published))

			got := receive(t, events)
			assert.Equal(t, published.ID, got.ID)
			assert.Equal(t, entities.FacilityEventTypeWardCapacityUpdate, got.EventType)
			assert.EqualValues(t, 19, got.ChangedFields["occupied"])

			cancel()
			assertClosed(t, events)
		})
	}
}

func TestMemoryEventBus_OtherChannelsNotDelivered(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := bus.Subscribe(ctx, "facility:p1")
	require.NoError(t, err)

	event := entities.NewFacilityEvent("p2", entities.FacilityEventTypeOpenStatusChange, entities.Location{}, nil)
	require.NoError(t, bus.Publish(ctx, "facility:p2", event))

	select {
	case <-events:
		t.Fatal("received event for another channel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_CloseEndsSubscriptions(t *testing.T) {
	bus := NewMemoryEventBus()

	events, err := bus.Subscribe(context.Background(), providers.EventChannelFacilityUpdates)
	require.NoError(t, err)

	require.NoError(t, bus.Close())
	assertClosed(t, events)

	late, err := bus.Subscribe(context.Background(), providers.EventChannelFacilityUpdates)
	require.NoError(t, err)
	assertClosed(t, late)
}
