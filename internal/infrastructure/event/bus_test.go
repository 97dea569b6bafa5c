package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Receivable", uuid.New()),
	}
}

type recordingHandler struct {
	mu       sync.Mutex
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.received = append(h.received, event)
	h.mu.Unlock()
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func TestInMemoryEventBus_PublishToTypedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"ReceivableSettled"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newStubEvent("ReceivableSettled"))
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_TypedHandlerIgnoresOtherTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"ReceivableSettled"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newStubEvent("ReceivableCreated"))
	assert.NoError(t, err)
	assert.Equal(t, 0, handler.count())
}

func TestInMemoryEventBus_WildcardHandlerReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newStubEvent("ReceivableCreated"),
		newStubEvent("ReceivableSettled"),
		newStubEvent("SalesOrderConfirmed"),
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, handler.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"ReceivableSettled"}}
	bus.Subscribe(handler, "SalesOrderConfirmed")

	assert.NoError(t, bus.Publish(context.Background(), newStubEvent("ReceivableSettled")))
	assert.Equal(t, 0, handler.count())

	assert.NoError(t, bus.Publish(context.Background(), newStubEvent("SalesOrderConfirmed")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{fail: true}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newStubEvent("ReceivableSettled"))
	assert.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{panics: true}
	healthy := &recordingHandler{}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newStubEvent("ReceivableSettled"))
	})
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"ReceivableSettled"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	err := bus.Publish(context.Background(), newStubEvent("ReceivableSettled"))
	assert.NoError(t, err)
	assert.Equal(t, 0, handler.count())
}

func TestAuditLogHandler_HandlesAnyEvent(t *testing.T) {
	handler := NewAuditLogHandler(zap.NewNop())

	assert.Empty(t, handler.EventTypes())
	assert.NoError(t, handler.Handle(context.Background(), newStubEvent("CustomerCreated")))
}
