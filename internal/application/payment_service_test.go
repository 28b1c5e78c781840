package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"github.com/karyalink/engagement-go/internal/domain/project"
)

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a pending entry with a generated reference", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())

		e, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 30000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != payment.StatusPending {
			t.Fatalf("expected pending, got %s", e.Status)
		}
		if e.ExternalRef == "" {
			t.Fatal("expected a generated external reference")
		}
		if len(st.payments) != 1 {
			t.Fatalf("expected 1 ledger entry, got %d", len(st.payments))
		}
	})

	t.Run("gross completed sum bounds the budget", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		now := time.Now()
		st.seedPayment(payment.Payment{Amount: 90000, Status: payment.StatusCompleted, ConfirmedAt: &now})

		// A refund does not free up budget: the check is over gross
		// completed amounts, refunds or not.
		srcID := uint(1)
		st.seedPayment(payment.Payment{Amount: 90000, Status: payment.StatusRefunded, SourceID: &srcID})

		_, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 1})
		if !errors.Is(err, application.ErrExceedsBudget) {
			t.Fatalf("expected ErrExceedsBudget, got %v", err)
		}
	})

	t.Run("pending entries do not count against the budget", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 90000, Status: payment.StatusPending})

		if _, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 90000}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("worker cannot record", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.RecordPayment(ctx, 1, testWorkerID, payment.RecordPaymentDTO{Amount: 100})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("rejected on terminal projects", func(t *testing.T) {
		for _, status := range []project.Status{project.StatusCompleted, project.StatusCancelled} {
			p := inProgressProject()
			p.Status = status
			svc, _ := newFixture(t, p)
			_, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 100})
			if !errors.Is(err, application.ErrInvalidState) {
				t.Fatalf("expected ErrInvalidState on %s project, got %v", status, err)
			}
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to completed", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 500, Status: payment.StatusPending})

		e, err := svc.ConfirmPayment(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != payment.StatusCompleted || e.ConfirmedAt == nil {
			t.Fatalf("expected completed with timestamp, got %+v", e)
		}
	})

	t.Run("retried confirmation is a no-op", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 500, Status: payment.StatusPending})

		first, err := svc.ConfirmPayment(ctx, 1)
		if err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		second, err := svc.ConfirmPayment(ctx, 1)
		if err != nil {
			t.Fatalf("second confirm: %v", err)
		}
		if second.Status != payment.StatusCompleted {
			t.Fatalf("expected completed, got %s", second.Status)
		}
		if !first.ConfirmedAt.Equal(*second.ConfirmedAt) {
			t.Fatal("retried confirmation must not move the timestamp")
		}
		if len(st.payments) != 1 {
			t.Fatalf("retry must not create entries, got %d", len(st.payments))
		}
	})

	t.Run("completed sum can never exceed the budget", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())

		// Both fit individually at record time; only one may land.
		first, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 90000})
		if err != nil {
			t.Fatalf("record first: %v", err)
		}
		second, err := svc.RecordPayment(ctx, 1, testClientID, payment.RecordPaymentDTO{Amount: 90000})
		if err != nil {
			t.Fatalf("record second: %v", err)
		}

		if _, err := svc.ConfirmPayment(ctx, first.ID); err != nil {
			t.Fatalf("confirm first: %v", err)
		}
		if _, err := svc.ConfirmPayment(ctx, second.ID); !errors.Is(err, application.ErrExceedsBudget) {
			t.Fatalf("expected ErrExceedsBudget on second confirm, got %v", err)
		}
		if st.payments[1].Status != payment.StatusPending {
			t.Fatalf("rejected entry must stay pending, got %s", st.payments[1].Status)
		}

		summary, _, err := svc.PaymentHistory(ctx, 1, testClientID)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if summary.TotalPaid > summary.AgreedBudget {
			t.Fatalf("completed sum %d exceeds budget %d", summary.TotalPaid, summary.AgreedBudget)
		}
	})

	t.Run("no confirmation on a cancelled project", func(t *testing.T) {
		p := inProgressProject()
		p.Status = project.StatusCancelled
		svc, st := newFixture(t, p)
		st.seedPayment(payment.Payment{Amount: 500, Status: payment.StatusPending})

		_, err := svc.ConfirmPayment(ctx, 1)
		if !errors.Is(err, application.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("refunded entries cannot be confirmed", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 500, Status: payment.StatusRefunded})

		_, err := svc.ConfirmPayment(ctx, 1)
		if !errors.Is(err, application.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.ConfirmPayment(ctx, 42)
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRefundPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a refund entry and leaves the source intact", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		now := time.Now()
		st.seedPayment(payment.Payment{Amount: 30000, Status: payment.StatusCompleted, ConfirmedAt: &now})

		refund, err := svc.RefundPayment(ctx, 1, testClientID, "duplicate charge")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if refund.Status != payment.StatusRefunded || refund.SourceID == nil || *refund.SourceID != 1 {
			t.Fatalf("unexpected refund entry: %+v", refund)
		}
		if refund.Amount != 30000 {
			t.Fatalf("refund must mirror the source amount, got %d", refund.Amount)
		}
		if st.payments[0].Status != payment.StatusCompleted {
			t.Fatalf("source entry must stay completed, got %s", st.payments[0].Status)
		}

		summary, _, err := svc.PaymentHistory(ctx, 1, testClientID)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if summary.TotalPaid != 0 || summary.Remaining != 90000 {
			t.Fatalf("refund must net out of total_paid: %+v", summary)
		}
	})

	t.Run("only completed payments refundable", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 30000, Status: payment.StatusPending})

		_, err := svc.RefundPayment(ctx, 1, testClientID, "")
		if !errors.Is(err, application.ErrNotCompleted) {
			t.Fatalf("expected ErrNotCompleted, got %v", err)
		}
	})

	t.Run("worker cannot refund", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		now := time.Now()
		st.seedPayment(payment.Payment{Amount: 30000, Status: payment.StatusCompleted, ConfirmedAt: &now})

		_, err := svc.RefundPayment(ctx, 1, testWorkerID, "")
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestPaymentHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("remaining never goes negative", func(t *testing.T) {
		p := inProgressProject()
		p.AgreedBudget = 100
		svc, st := newFixture(t, p)
		now := time.Now()
		st.seedPayment(payment.Payment{Amount: 150, Status: payment.StatusCompleted, ConfirmedAt: &now})

		summary, entries, err := svc.PaymentHistory(ctx, 1, testWorkerID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalPaid != 150 {
			t.Fatalf("expected total 150, got %d", summary.TotalPaid)
		}
		if summary.Remaining != 0 {
			t.Fatalf("remaining must floor at zero, got %d", summary.Remaining)
		}
		if len(entries) != 1 {
			t.Fatalf("expected full ledger, got %d entries", len(entries))
		}
	})

	t.Run("refund against non-completed source is ignored", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedPayment(payment.Payment{Amount: 100, Status: payment.StatusFailed})
		srcID := uint(1)
		st.seedPayment(payment.Payment{Amount: 100, Status: payment.StatusRefunded, SourceID: &srcID})
		now := time.Now()
		st.seedPayment(payment.Payment{Amount: 400, Status: payment.StatusCompleted, ConfirmedAt: &now})

		summary, _, err := svc.PaymentHistory(ctx, 1, testClientID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalPaid != 400 {
			t.Fatalf("expected total 400, got %d", summary.TotalPaid)
		}
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, _, err := svc.PaymentHistory(ctx, 1, strangerID)
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
