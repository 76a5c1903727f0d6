package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Payable", uuid.New(), uuid.New())}
}

type testHandler struct {
	mu      sync.Mutex
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.types }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string][]error
}

func (o *recordingObserver) ObserveEvent(eventType string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = map[string][]error{}
	}
	o.outcomes[eventType] = append(o.outcomes[eventType], err)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	created := &testHandler{types: []string{"PayableCreated"}}
	all := &testHandler{}
	bus.Subscribe(created)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PayableCreated"), newTestEvent("PayablePaid")))

	assert.Equal(t, 1, created.count())
	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_HandlerFailuresAreContained(t *testing.T) {
	observer := &recordingObserver{}
	bus := NewInMemoryEventBus(nil).WithObserver(observer)
	failing := &testHandler{types: []string{"PayableCreated"}, err: errors.New("db down")}
	panicking := &testHandler{types: []string{"PayableCreated"}, panics: true}
	healthy := &testHandler{types: []string{"PayableCreated"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("PayableCreated"))

	require.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
	outcomes := observer.outcomes["PayableCreated"]
	require.Len(t, outcomes, 3)
	assert.EqualError(t, outcomes[0], "db down")
	assert.ErrorContains(t, outcomes[1], "panicked")
	assert.NoError(t, outcomes[2])
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &testHandler{types: []string{"PayablePaid"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PayablePaid")))

	assert.Zero(t, h.count())
}

func TestInMemoryEventBus_StopDropsEvents(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &testHandler{}
	bus.Subscribe(h)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(ctx))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PayablePaid")))
	assert.Zero(t, h.count())

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PayablePaid")))
	assert.Equal(t, 1, h.count())
}
