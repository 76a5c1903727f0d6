package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeHub_SignalsOnlyTheOffice(t *testing.T) {
	hub := NewChangeHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mine, other := uuid.New(), uuid.New()
	ch, err := hub.Subscribe(ctx, mine)
	require.NoError(t, err)
	otherCh, err := hub.Subscribe(ctx, other)
	require.NoError(t, err)

	require.NoError(t, hub.Publish(ctx, mine))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
	select {
	case <-otherCh:
		t.Fatal("other office must not be signalled")
	default:
	}
}

func TestChangeHub_CoalescesPendingSignals(t *testing.T) {
	hub := NewChangeHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	office := uuid.New()
	ch, err := hub.Subscribe(ctx, office)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, hub.Publish(ctx, office))
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("signals should coalesce")
	default:
	}
}

func TestChangeHub_UnsubscribesOnCancel(t *testing.T) {
	hub := NewChangeHub()
	office := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := hub.Subscribe(ctx, office)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers(office))

	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Eventually(t, func() bool { return hub.Subscribers(office) == 0 }, time.Second, 10*time.Millisecond)
}

func TestChangeHub_Relay(t *testing.T) {
	hub := NewChangeHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	office := uuid.New()
	ch, err := hub.Subscribe(ctx, office)
	require.NoError(t, err)

	assert.False(t, hub.relay(ctx, "not-an-id"))
	assert.True(t, hub.relay(ctx, office.String()))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected relayed signal")
	}
}
