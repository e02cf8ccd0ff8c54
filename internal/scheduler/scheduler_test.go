package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
)

type recordingStore struct {
	appendedHistory []*domain.JobHistory
}

func (r *recordingStore) AppendJobHistory(ctx context.Context, history *domain.JobHistory) error {
	r.appendedHistory = append(r.appendedHistory, history)
	return nil
}

// The remaining port.Store methods are unused by the scheduler itself
// (only Jobs.* use them), so this fake only needs AppendJobHistory to
// exercise Scheduler in isolation. A minimal embed satisfies the
// interface for the handful of methods Scheduler never calls.
type fullStore struct {
	recordingStore
	noopStore
}

// AppendJobHistory resolves the name clash between the two embeds,
// which both define it, in favour of the recording one.
func (f *fullStore) AppendJobHistory(ctx context.Context, history *domain.JobHistory) error {
	return f.recordingStore.AppendJobHistory(ctx, history)
}

func TestScheduler_TriggerRunsImmediatelyAndPersists(t *testing.T) {
	store := &fullStore{}
	s := New(store)

	ran := false
	err := s.Register("test-job", "0 0 1 1 *", func(ctx context.Context) *domain.JobHistory {
		ran = true
		return &domain.JobHistory{JobName: "test-job", Status: domain.JobSuccess}
	})
	require.NoError(t, err)

	history, ok := s.Trigger(context.Background(), "test-job")
	require.True(t, ok)
	assert.True(t, ran)
	assert.Equal(t, "test-job", history.JobName)
	assert.Len(t, store.appendedHistory, 1)
}

func TestScheduler_StartStopIsIdempotent(t *testing.T) {
	store := &fullStore{}
	s := New(store)
	require.NoError(t, s.Register("nightly", "0 2 * * *", func(ctx context.Context) *domain.JobHistory { return nil }))

	assert.True(t, s.Start("nightly"))
	assert.False(t, s.Start("nightly")) // already running
	assert.True(t, s.IsRunning("nightly"))

	assert.True(t, s.Stop("nightly"))
	assert.False(t, s.Stop("nightly")) // already stopped
	assert.False(t, s.IsRunning("nightly"))
}

func TestScheduler_UnknownJobNameNoOp(t *testing.T) {
	store := &fullStore{}
	s := New(store)

	_, ok := s.Trigger(context.Background(), "does-not-exist")
	assert.False(t, ok)
	assert.False(t, s.Start("does-not-exist"))
}

func TestScheduler_RegisterRejectsInvalidCron(t *testing.T) {
	store := &fullStore{}
	s := New(store)
	err := s.Register("bad", "not a cron expression", func(ctx context.Context) *domain.JobHistory { return nil })
	assert.Error(t, err)
}
