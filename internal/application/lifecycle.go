package application

import (
	"context"
	"sync"
	"time"

	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"github.com/karyalink/engagement-go/internal/domain/project"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/internal/progress"
	"github.com/karyalink/engagement-go/internal/repository"
	"github.com/karyalink/engagement-go/pkg/metrics"
)

// Snapshot is the consistent composite view returned by every mutating
// operation. It is assembled inside the operation's transaction so callers
// never observe a status inconsistent with checkpoint or payment state.
type Snapshot struct {
	Project        project.Project         `json:"project"`
	Checkpoints    []checkpoint.Checkpoint `json:"checkpoints"`
	Progress       progress.Progress       `json:"progress"`
	PaymentSummary payment.Summary         `json:"payment_summary"`
}

// CompletionRequest is the RequestCompletion response. The flag warns the
// client about outstanding checkpoints; it never blocks the request.
type CompletionRequest struct {
	Snapshot
	IncompleteCheckpoints bool `json:"incomplete_checkpoints"`
}

// LifecycleService is the single entry point for all operations on an
// engagement. Mutations on one project are serialized by a per-project lock
// and applied in one transaction; different projects proceed in parallel.
type LifecycleService struct {
	Repos *repository.Repos

	hub     *notify.Hub
	timeout time.Duration
	nowFn   func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewLifecycleService(repos *repository.Repos, hub *notify.Hub, timeout time.Duration) *LifecycleService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LifecycleService{
		Repos:   repos,
		hub:     hub,
		timeout: timeout,
		nowFn:   time.Now,
		locks:   make(map[uint]*sync.Mutex),
	}
}

func (s *LifecycleService) projectLock(projectID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	return l
}

// mutate runs fn under the project's write lock inside one bounded
// transaction and returns the post-commit snapshot. fn is responsible for
// persisting any changes it makes through the transactional repos; on any
// error nothing is applied.
func (s *LifecycleService) mutate(ctx context.Context, projectID uint, fn func(r *repository.Repos, p *project.Project) error) (*Snapshot, error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var snap *Snapshot
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.Project.GetProjectByID(projectID)
		if err != nil {
			return asAppError(err)
		}
		if err := fn(r, &p); err != nil {
			return err
		}
		snap, err = s.buildSnapshot(r, &p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *LifecycleService) buildSnapshot(r *repository.Repos, p *project.Project) (*Snapshot, error) {
	cps, err := r.Checkpoint.ListByProjectID(p.ID)
	if err != nil {
		return nil, asAppError(err)
	}
	pays, err := r.Payment.ListByProjectID(p.ID)
	if err != nil {
		return nil, asAppError(err)
	}
	return &Snapshot{
		Project:        *p,
		Checkpoints:    cps,
		Progress:       progress.Compute(cps, p.Deadline, s.nowFn()),
		PaymentSummary: summarize(p.AgreedBudget, pays),
	}, nil
}

func (s *LifecycleService) publish(projectID uint, eventType string, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(notify.Event{
		ProjectID: projectID,
		Type:      eventType,
		Payload:   payload,
		At:        s.nowFn(),
	})
}

// ActiveProject returns the caller's engagement in a non-terminal state.
func (s *LifecycleService) ActiveProject(ctx context.Context, userID uint) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var snap *Snapshot
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.Project.GetActiveByPartyID(userID)
		if err != nil {
			return asAppError(err)
		}
		snap, err = s.buildSnapshot(r, &p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ProjectForParty loads a project the caller is a party to.
func (s *LifecycleService) ProjectForParty(ctx context.Context, projectID, userID uint) (*project.Project, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return nil, asAppError(err)
	}
	if !p.IsParty(userID) {
		return nil, ErrForbidden
	}
	return &p, nil
}

// StartWork moves an accepted project to in_progress. Worker only.
func (s *LifecycleService) StartWork(ctx context.Context, projectID, workerID uint) (*Snapshot, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if p.WorkerID != workerID {
			return ErrForbidden
		}
		if p.Status != project.StatusAccepted {
			return ErrInvalidState
		}
		now := s.nowFn()
		p.Status = project.StatusInProgress
		p.StartedAt = &now
		return asAppError(r.Project.UpdateProject(p))
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLifecycleTransition(string(project.StatusInProgress))
	s.publish(projectID, notify.EventProjectStarted, nil)
	return snap, nil
}

// RequestCompletion signals the work is ready for final sign-off. It is
// never blocked by open checkpoints; the response flags them instead so the
// client can weigh an early request.
func (s *LifecycleService) RequestCompletion(ctx context.Context, projectID, workerID uint, notes string) (*CompletionRequest, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if p.WorkerID != workerID {
			return ErrForbidden
		}
		if p.Status != project.StatusInProgress {
			return ErrInvalidState
		}
		p.Status = project.StatusCompletionRequested
		if err := asAppError(r.Project.UpdateProject(p)); err != nil {
			return err
		}
		if notes != "" {
			if err := s.appendChat(r, p.ID, workerID, "Completion requested: "+notes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	incomplete := snap.Progress.CompletedCheckpoints < snap.Progress.TotalCheckpoints
	metrics.RecordLifecycleTransition(string(project.StatusCompletionRequested))
	s.publish(projectID, notify.EventCompletionRequested, map[string]bool{"incomplete_checkpoints": incomplete})
	return &CompletionRequest{Snapshot: *snap, IncompleteCheckpoints: incomplete}, nil
}

// ApproveCompletion finalizes the project and reconciles payment in the same
// transaction: outstanding pending payments are confirmed oldest-first while
// they fit the remaining balance. Either everything commits or nothing does.
func (s *LifecycleService) ApproveCompletion(ctx context.Context, projectID, clientID uint, input project.ApproveCompletionDTO) (*Snapshot, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if p.ClientID != clientID {
			return ErrForbidden
		}
		if p.Status != project.StatusCompletionRequested {
			return ErrInvalidState
		}
		now := s.nowFn()
		p.Status = project.StatusCompleted
		p.CompletedAt = &now
		p.Rating = &input.Rating
		p.CompletionNotes = input.CompletionNotes
		if err := asAppError(r.Project.UpdateProject(p)); err != nil {
			return err
		}
		return s.reconcilePayments(r, p)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLifecycleTransition(string(project.StatusCompleted))
	s.publish(projectID, notify.EventProjectCompleted, nil)
	return snap, nil
}

// RejectCompletion sends the project back to in_progress. The reason goes
// through the chat channel as a client-authored message so there is a single
// audit trail.
func (s *LifecycleService) RejectCompletion(ctx context.Context, projectID, clientID uint, reason string) (*Snapshot, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if p.ClientID != clientID {
			return ErrForbidden
		}
		if p.Status != project.StatusCompletionRequested {
			return ErrInvalidState
		}
		p.Status = project.StatusInProgress
		if err := asAppError(r.Project.UpdateProject(p)); err != nil {
			return err
		}
		return s.appendChat(r, p.ID, clientID, "Completion rejected: "+reason)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLifecycleTransition(string(project.StatusInProgress))
	s.publish(projectID, notify.EventCompletionRejected, map[string]string{"reason": reason})
	return snap, nil
}

// Cancel terminates the engagement before any money has moved. Once a
// payment is completed, cancellation must go through the dispute process
// instead.
func (s *LifecycleService) Cancel(ctx context.Context, projectID, actorID uint, reason string) (*Snapshot, error) {
	snap, err := s.mutate(ctx, projectID, func(r *repository.Repos, p *project.Project) error {
		if !p.IsParty(actorID) {
			return ErrForbidden
		}
		if !p.Cancellable() {
			return ErrInvalidState
		}
		n, err := r.Payment.CountCompleted(p.ID)
		if err != nil {
			return asAppError(err)
		}
		if n > 0 {
			return ErrHasCompletedPayments
		}
		p.Status = project.StatusCancelled
		if err := asAppError(r.Project.UpdateProject(p)); err != nil {
			return err
		}
		if reason != "" {
			return s.appendChat(r, p.ID, actorID, "Project cancelled: "+reason)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLifecycleTransition(string(project.StatusCancelled))
	s.publish(projectID, notify.EventProjectCancelled, map[string]string{"reason": reason})
	return snap, nil
}
