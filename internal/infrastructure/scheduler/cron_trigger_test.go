package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOffices struct {
	ids []uuid.UUID
	err error
}

func (o staticOffices) FindAllIDs(context.Context) ([]uuid.UUID, error) {
	return o.ids, o.err
}

func newTestTrigger(t *testing.T, offices OfficeLister) (*CronTrigger, *countingExecutor) {
	t.Helper()
	exec := newCountingExecutor(0)
	s, err := NewScheduler(testConfig(), exec, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	trigger := NewCronTrigger(CronTriggerConfig{DailyHour: 2, DailyMinute: 30}, s, offices, nil)
	return trigger, exec
}

func TestCronTrigger_FiresOncePerDay(t *testing.T) {
	trigger, exec := newTestTrigger(t, staticOffices{ids: []uuid.UUID{uuid.New()}})
	ctx := context.Background()

	trigger.now = func() time.Time { return time.Date(2026, 5, 1, 2, 29, 0, 0, time.UTC) }
	assert.False(t, trigger.checkAndTrigger(ctx))

	trigger.now = func() time.Time { return time.Date(2026, 5, 1, 2, 31, 0, 0, time.UTC) }
	assert.True(t, trigger.checkAndTrigger(ctx))
	assert.False(t, trigger.checkAndTrigger(ctx))

	for range AllJobTypes() {
		waitJob(t, exec.done)
	}

	trigger.now = func() time.Time { return time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC) }
	assert.True(t, trigger.checkAndTrigger(ctx))
}

func TestCronTrigger_RunNow(t *testing.T) {
	offices := []uuid.UUID{uuid.New(), uuid.New()}
	trigger, exec := newTestTrigger(t, staticOffices{ids: offices})

	scheduled := trigger.RunNow(context.Background(), time.Now())

	assert.Equal(t, 2, scheduled)
	for i := 0; i < 2*len(AllJobTypes()); i++ {
		waitJob(t, exec.done)
	}
}

func TestCronTrigger_RunNow_ListFailure(t *testing.T) {
	trigger, _ := newTestTrigger(t, staticOffices{err: errors.New("connection refused")})

	assert.Zero(t, trigger.RunNow(context.Background(), time.Now()))
}

func TestCronTrigger_StartStop(t *testing.T) {
	trigger, _ := newTestTrigger(t, staticOffices{})

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
}
