// Package progress derives aggregate completion figures from a project's
// checkpoint list and dates. Everything here is a pure function of its
// inputs; values are recomputed on every read so they can never go stale
// after a checkpoint mutation.
package progress

import (
	"math"
	"time"

	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
)

// Progress is the composite figure the frontend progress widgets consume.
// DaysRemaining and IsOverdue are nil when the project has no deadline.
type Progress struct {
	Percentage           int   `json:"percentage"`
	CompletedCheckpoints int   `json:"completed_checkpoints"`
	TotalCheckpoints     int   `json:"total_checkpoints"`
	DaysRemaining        *int  `json:"days_remaining,omitempty"`
	IsOverdue            *bool `json:"is_overdue,omitempty"`
}

// Percentage returns round(100 * completed / total), or 0 for an empty list.
func Percentage(checkpoints []checkpoint.Checkpoint) int {
	total := len(checkpoints)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, cp := range checkpoints {
		if cp.Status == checkpoint.StatusCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// TimeStatus returns whole days remaining until deadline (ceiling) and
// whether the deadline has passed by more than that. Nil inputs yield nil
// outputs.
func TimeStatus(deadline *time.Time, now time.Time) (daysRemaining *int, isOverdue *bool) {
	if deadline == nil {
		return nil, nil
	}
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	overdue := days < 0
	return &days, &overdue
}

// Compute assembles the full progress view for a snapshot.
func Compute(checkpoints []checkpoint.Checkpoint, deadline *time.Time, now time.Time) Progress {
	completed := 0
	for _, cp := range checkpoints {
		if cp.Status == checkpoint.StatusCompleted {
			completed++
		}
	}
	days, overdue := TimeStatus(deadline, now)
	return Progress{
		Percentage:           Percentage(checkpoints),
		CompletedCheckpoints: completed,
		TotalCheckpoints:     len(checkpoints),
		DaysRemaining:        days,
		IsOverdue:            overdue,
	}
}
