package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/hoteldesk/backend/internal/infrastructure/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func newTestEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "Reservation", uuid.New(), uuid.New())
	return &evt
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"reservation.created"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("reservation.created"))
	require.NoError(t, err)

	seen := handler.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "reservation.created", seen[0].EventType())
}

func TestInMemoryEventBus_UnmatchedTypeNotDelivered(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"reservation.created"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("guest.registered"))
	require.NoError(t, err)

	assert.Empty(t, handler.seen())
}

func TestInMemoryEventBus_WildcardHandlerReceivesEverything(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent("reservation.created"),
		newTestEvent("guest.registered"),
	)
	require.NoError(t, err)

	assert.Len(t, handler.seen(), 2)
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"reservation.created"}}
	bus.Subscribe(handler, "room.created")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("reservation.created")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("room.created")))

	seen := handler.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "room.created", seen[0].EventType())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{err: errors.New("boom")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("reservation.created"))
	require.NoError(t, err)

	assert.Len(t, healthy.seen(), 1)
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{panics: true}
	healthy := &recordingHandler{}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("reservation.created"))
	})
	assert.Len(t, healthy.seen(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("reservation.created")))
	assert.Empty(t, handler.seen())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}
