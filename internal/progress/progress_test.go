package progress_test

import (
	"testing"
	"time"

	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/progress"
	"github.com/stretchr/testify/assert"
)

func cps(statuses ...checkpoint.Status) []checkpoint.Checkpoint {
	out := make([]checkpoint.Checkpoint, len(statuses))
	for i, st := range statuses {
		out[i] = checkpoint.Checkpoint{ID: uint(i + 1), Order: i + 1, Status: st}
	}
	return out
}

func TestPercentage(t *testing.T) {
	t.Run("empty list is zero", func(t *testing.T) {
		assert.Equal(t, 0, progress.Percentage(nil))
	})

	t.Run("none completed", func(t *testing.T) {
		list := cps(checkpoint.StatusPending, checkpoint.StatusSubmitted)
		assert.Equal(t, 0, progress.Percentage(list))
	})

	t.Run("one of three rounds to 33", func(t *testing.T) {
		list := cps(checkpoint.StatusCompleted, checkpoint.StatusPending, checkpoint.StatusPending)
		assert.Equal(t, 33, progress.Percentage(list))
	})

	t.Run("two of three rounds to 67", func(t *testing.T) {
		list := cps(checkpoint.StatusCompleted, checkpoint.StatusCompleted, checkpoint.StatusPending)
		assert.Equal(t, 67, progress.Percentage(list))
	})

	t.Run("all completed", func(t *testing.T) {
		list := cps(checkpoint.StatusCompleted, checkpoint.StatusCompleted, checkpoint.StatusCompleted)
		assert.Equal(t, 100, progress.Percentage(list))
	})
}

func TestTimeStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no deadline yields nil", func(t *testing.T) {
		days, overdue := progress.TimeStatus(nil, now)
		assert.Nil(t, days)
		assert.Nil(t, overdue)
	})

	t.Run("partial day counts as a full day", func(t *testing.T) {
		deadline := now.Add(36 * time.Hour)
		days, overdue := progress.TimeStatus(&deadline, now)
		assert.Equal(t, 2, *days)
		assert.False(t, *overdue)
	})

	t.Run("deadline today is not overdue", func(t *testing.T) {
		deadline := now.Add(6 * time.Hour)
		days, overdue := progress.TimeStatus(&deadline, now)
		assert.Equal(t, 1, *days)
		assert.False(t, *overdue)
	})

	t.Run("past deadline is overdue", func(t *testing.T) {
		deadline := now.Add(-50 * time.Hour)
		days, overdue := progress.TimeStatus(&deadline, now)
		assert.Equal(t, -2, *days)
		assert.True(t, *overdue)
	})
}

func TestCompute(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.Add(10 * 24 * time.Hour)
	list := cps(checkpoint.StatusCompleted, checkpoint.StatusSubmitted, checkpoint.StatusPending)

	p := progress.Compute(list, &deadline, now)
	assert.Equal(t, 33, p.Percentage)
	assert.Equal(t, 1, p.CompletedCheckpoints)
	assert.Equal(t, 3, p.TotalCheckpoints)
	assert.Equal(t, 10, *p.DaysRemaining)
	assert.False(t, *p.IsOverdue)

	p = progress.Compute(nil, nil, now)
	assert.Equal(t, 0, p.Percentage)
	assert.Nil(t, p.DaysRemaining)
	assert.Nil(t, p.IsOverdue)
}
