package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"github.com/karyalink/engagement-go/internal/domain/project"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/internal/repository"
	"github.com/karyalink/engagement-go/pkg/metrics"
)

// summarize reconciles the ledger: total_paid is the sum of completed
// entries minus refunds that reference a completed source, remaining is
// floored at zero.
func summarize(budget int64, entries []payment.Payment) payment.Summary {
	byID := make(map[uint]payment.Payment, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	var completed, refunded int64
	for _, e := range entries {
		switch e.Status {
		case payment.StatusCompleted:
			completed += e.Amount
		case payment.StatusRefunded:
			if e.SourceID != nil {
				if src, ok := byID[*e.SourceID]; ok && src.Status == payment.StatusCompleted {
					refunded += e.Amount
				}
			}
		}
	}
	total := completed - refunded
	remaining := budget - total
	if remaining < 0 {
		remaining = 0
	}
	return payment.Summary{AgreedBudget: budget, TotalPaid: total, Remaining: remaining}
}

func grossCompleted(entries []payment.Payment) int64 {
	var sum int64
	for _, e := range entries {
		if e.Status == payment.StatusCompleted {
			sum += e.Amount
		}
	}
	return sum
}

// reconcilePayments confirms outstanding pending payments oldest-first while
// they fit the gross capacity left under the budget. Capacity is gross, not
// net of refunds, so the completed sum can never exceed the budget. Runs
// inside the approval transaction.
func (s *LifecycleService) reconcilePayments(r *repository.Repos, p *project.Project) error {
	entries, err := r.Payment.ListByProjectID(p.ID)
	if err != nil {
		return asAppError(err)
	}
	remaining := p.AgreedBudget - grossCompleted(entries)
	pending, err := r.Payment.ListPendingByProjectID(p.ID)
	if err != nil {
		return asAppError(err)
	}
	for _, e := range pending {
		if e.Amount > remaining {
			continue
		}
		now := s.nowFn()
		e.Status = payment.StatusCompleted
		e.ConfirmedAt = &now
		if err := asAppError(r.Payment.UpdatePayment(&e)); err != nil {
			return err
		}
		remaining -= e.Amount
	}
	return nil
}

// RecordPayment opens a pending ledger entry against the budget.
func (s *LifecycleService) RecordPayment(ctx context.Context, projectID, clientID uint, input payment.RecordPaymentDTO) (*payment.Payment, error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var created *payment.Payment
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.Project.GetProjectByID(projectID)
		if err != nil {
			return asAppError(err)
		}
		if p.ClientID != clientID {
			return ErrForbidden
		}
		if p.Terminal() {
			return ErrInvalidState
		}
		entries, err := r.Payment.ListByProjectID(projectID)
		if err != nil {
			return asAppError(err)
		}
		if input.Amount+grossCompleted(entries) > p.AgreedBudget {
			return ErrExceedsBudget
		}
		ref := input.ExternalReference
		if ref == "" {
			ref = uuid.NewString()
		}
		e := &payment.Payment{
			ProjectID:   projectID,
			Amount:      input.Amount,
			Status:      payment.StatusPending,
			ExternalRef: ref,
			CreatedAt:   s.nowFn(),
		}
		if err := asAppError(r.Payment.CreatePayment(e)); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(projectID, notify.EventPaymentRecorded, created)
	return created, nil
}

// ConfirmPayment moves a pending entry to completed. Capacity is rechecked
// here: confirmation is what moves money, so the completed sum must stay
// within the budget even when every pending entry fit at record time.
// Confirming an already completed payment returns the existing record so
// retried gateway callbacks are harmless.
func (s *LifecycleService) ConfirmPayment(ctx context.Context, paymentID uint) (*payment.Payment, error) {
	e, err := s.Repos.Payment.GetPaymentByID(paymentID)
	if err != nil {
		return nil, asAppError(err)
	}

	l := s.projectLock(e.ProjectID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var confirmed *payment.Payment
	err = s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		e, err := r.Payment.GetPaymentByID(paymentID)
		if err != nil {
			return asAppError(err)
		}
		switch e.Status {
		case payment.StatusCompleted:
			confirmed = &e
			return nil
		case payment.StatusPending:
			p, err := r.Project.GetProjectByID(e.ProjectID)
			if err != nil {
				return asAppError(err)
			}
			if p.Status == project.StatusCancelled {
				return ErrInvalidState
			}
			entries, err := r.Payment.ListByProjectID(e.ProjectID)
			if err != nil {
				return asAppError(err)
			}
			if e.Amount+grossCompleted(entries) > p.AgreedBudget {
				return ErrExceedsBudget
			}
			now := s.nowFn()
			e.Status = payment.StatusCompleted
			e.ConfirmedAt = &now
			if err := asAppError(r.Payment.UpdatePayment(&e)); err != nil {
				return err
			}
			confirmed = &e
			return nil
		default:
			return ErrInvalidState
		}
	})
	if err != nil {
		return nil, err
	}
	metrics.PaymentsConfirmed.Inc()
	s.publish(e.ProjectID, notify.EventPaymentConfirmed, confirmed)
	return confirmed, nil
}

// RefundPayment appends a refunded entry referencing a completed source.
// The source record is never mutated; the ledger is append-only.
func (s *LifecycleService) RefundPayment(ctx context.Context, paymentID, clientID uint, reason string) (*payment.Payment, error) {
	src, err := s.Repos.Payment.GetPaymentByID(paymentID)
	if err != nil {
		return nil, asAppError(err)
	}

	l := s.projectLock(src.ProjectID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var refund *payment.Payment
	err = s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		src, err := r.Payment.GetPaymentByID(paymentID)
		if err != nil {
			return asAppError(err)
		}
		p, err := r.Project.GetProjectByID(src.ProjectID)
		if err != nil {
			return asAppError(err)
		}
		if p.ClientID != clientID {
			return ErrForbidden
		}
		if src.Status != payment.StatusCompleted {
			return ErrNotCompleted
		}
		srcID := src.ID
		e := &payment.Payment{
			ProjectID: src.ProjectID,
			Amount:    src.Amount,
			Status:    payment.StatusRefunded,
			SourceID:  &srcID,
			Reason:    reason,
			CreatedAt: s.nowFn(),
		}
		if err := asAppError(r.Payment.CreatePayment(e)); err != nil {
			return err
		}
		refund = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(src.ProjectID, notify.EventPaymentRefunded, refund)
	return refund, nil
}

// PaymentHistory returns the reconciled summary plus the full ledger.
func (s *LifecycleService) PaymentHistory(ctx context.Context, projectID, userID uint) (payment.Summary, []payment.Payment, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return payment.Summary{}, nil, asAppError(err)
	}
	if !p.IsParty(userID) {
		return payment.Summary{}, nil, ErrForbidden
	}
	entries, err := s.Repos.Payment.ListByProjectID(projectID)
	if err != nil {
		return payment.Summary{}, nil, asAppError(err)
	}
	return summarize(p.AgreedBudget, entries), entries, nil
}
