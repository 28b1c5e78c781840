package application

import (
	"context"

	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/domain/project"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/internal/repository"
	"github.com/karyalink/engagement-go/pkg/metrics"
)

// CreateCheckpoint appends the next milestone. Client only; order must be
// the next contiguous value for the project.
func (s *LifecycleService) CreateCheckpoint(ctx context.Context, projectID, clientID uint, input checkpoint.CreateCheckpointDTO) (*Snapshot, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if p.ClientID != clientID {
			return ErrForbidden
		}
		if p.Terminal() {
			return ErrInvalidState
		}
		max, err := r.Checkpoint.MaxOrder(p.ID)
		if err != nil {
			return asAppError(err)
		}
		if input.Order != max+1 {
			return ErrInvalidOrder
		}
		cp := &checkpoint.Checkpoint{
			ProjectID:   p.ID,
			Order:       input.Order,
			Title:       input.Title,
			Description: input.Description,
			Deadline:    input.Deadline,
			Status:      checkpoint.StatusPending,
		}
		return asAppError(r.Checkpoint.CreateCheckpoint(cp))
	})
	if err != nil {
		return nil, err
	}
	s.publish(projectID, notify.EventCheckpointCreated, nil)
	return snap, nil
}

// SubmitCheckpoint records the worker's submission. A checkpoint can only be
// submitted again after a rejection returned it to pending.
func (s *LifecycleService) SubmitCheckpoint(ctx context.Context, checkpointID, workerID uint, input checkpoint.SubmitCheckpointDTO) (*Snapshot, error) {
	cp, err := s.Repos.Checkpoint.GetCheckpointByID(checkpointID)
	if err != nil {
		return nil, asAppError(err)
	}

	snap, err := s.mutate(ctx, cp.ProjectID, func(r *repository.Repos, p *project.Project) error {
		if p.WorkerID != workerID {
			return ErrForbidden
		}
		cp, err := r.Checkpoint.GetCheckpointByID(checkpointID)
		if err != nil {
			return asAppError(err)
		}
		if cp.Status != checkpoint.StatusPending {
			return ErrNotPending
		}
		now := s.nowFn()
		cp.Status = checkpoint.StatusSubmitted
		cp.WorkerNotes = input.Notes
		cp.DeliverableRefs = input.DeliverableRefs
		cp.SubmittedAt = &now
		return asAppError(r.Checkpoint.UpdateCheckpoint(&cp))
	})
	if err != nil {
		return nil, err
	}
	s.publish(cp.ProjectID, notify.EventCheckpointSubmitted, map[string]uint{"checkpoint_id": checkpointID})
	return snap, nil
}

// ReviewCheckpoint applies the client's decision: accept completes the
// checkpoint, reject returns it to pending so the worker can resubmit.
func (s *LifecycleService) ReviewCheckpoint(ctx context.Context, checkpointID, clientID uint, input checkpoint.ReviewCheckpointDTO) (*Snapshot, error) {
	cp, err := s.Repos.Checkpoint.GetCheckpointByID(checkpointID)
	if err != nil {
		return nil, asAppError(err)
	}

	snap, err := s.mutate(ctx, cp.ProjectID, func(r *repository.Repos, p *project.Project) error {
		if p.ClientID != clientID {
			return ErrForbidden
		}
		cp, err := r.Checkpoint.GetCheckpointByID(checkpointID)
		if err != nil {
			return asAppError(err)
		}
		if cp.Status != checkpoint.StatusSubmitted {
			return ErrNotSubmitted
		}
		cp.ClientNotes = input.Notes
		if input.Decision == checkpoint.DecisionAccept {
			now := s.nowFn()
			cp.Status = checkpoint.StatusCompleted
			cp.CompletedAt = &now
		} else {
			cp.Status = checkpoint.StatusPending
			cp.SubmittedAt = nil
		}
		return asAppError(r.Checkpoint.UpdateCheckpoint(&cp))
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordCheckpointReview(input.Decision)
	s.publish(cp.ProjectID, notify.EventCheckpointReviewed, map[string]any{
		"checkpoint_id": checkpointID,
		"decision":      input.Decision,
	})
	return snap, nil
}

// ListCheckpoints returns the project's milestones in order. Parties only.
func (s *LifecycleService) ListCheckpoints(ctx context.Context, projectID, userID uint) ([]checkpoint.Checkpoint, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return nil, asAppError(err)
	}
	if !p.IsParty(userID) {
		return nil, ErrForbidden
	}
	cps, err := s.Repos.Checkpoint.ListByProjectID(projectID)
	if err != nil {
		return nil, asAppError(err)
	}
	return cps, nil
}
