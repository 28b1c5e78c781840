package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/domain/project"
)

func TestCreateCheckpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("orders must be contiguous from one", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())

		if _, err := svc.CreateCheckpoint(ctx, 1, testClientID, checkpoint.CreateCheckpointDTO{Order: 1, Title: "First"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.CreateCheckpoint(ctx, 1, testClientID, checkpoint.CreateCheckpointDTO{Order: 3, Title: "Gap"}); !errors.Is(err, application.ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder for a gap, got %v", err)
		}
		if _, err := svc.CreateCheckpoint(ctx, 1, testClientID, checkpoint.CreateCheckpointDTO{Order: 1, Title: "Dup"}); !errors.Is(err, application.ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder for a duplicate, got %v", err)
		}
		snap, err := svc.CreateCheckpoint(ctx, 1, testClientID, checkpoint.CreateCheckpointDTO{Order: 2, Title: "Second"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.Checkpoints) != 2 {
			t.Fatalf("expected 2 checkpoints, got %d", len(snap.Checkpoints))
		}
		if st.checkpoints[1].Status != checkpoint.StatusPending {
			t.Fatalf("new checkpoint must start pending, got %s", st.checkpoints[1].Status)
		}
	})

	t.Run("worker cannot create", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.CreateCheckpoint(ctx, 1, testWorkerID, checkpoint.CreateCheckpointDTO{Order: 1, Title: "X"})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("rejected on terminal project", func(t *testing.T) {
		p := inProgressProject()
		p.Status = project.StatusCancelled
		svc, _ := newFixture(t, p)
		_, err := svc.CreateCheckpoint(ctx, 1, testClientID, checkpoint.CreateCheckpointDTO{Order: 1, Title: "X"})
		if !errors.Is(err, application.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})
}

func TestSubmitCheckpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("records notes and deliverables", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusPending})

		refs := []string{"projects/1/checkpoints/1/a.pdf"}
		snap, err := svc.SubmitCheckpoint(ctx, id, testWorkerID, checkpoint.SubmitCheckpointDTO{Notes: "see attached", DeliverableRefs: refs})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cp := snap.Checkpoints[0]
		if cp.Status != checkpoint.StatusSubmitted {
			t.Fatalf("expected submitted, got %s", cp.Status)
		}
		if cp.WorkerNotes != "see attached" || len(cp.DeliverableRefs) != 1 {
			t.Fatalf("submission not recorded: %+v", cp)
		}
		if cp.SubmittedAt == nil {
			t.Fatal("expected SubmittedAt to be set")
		}
	})

	t.Run("cannot submit twice", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusSubmitted})
		_, err := svc.SubmitCheckpoint(ctx, id, testWorkerID, checkpoint.SubmitCheckpointDTO{})
		if !errors.Is(err, application.ErrNotPending) {
			t.Fatalf("expected ErrNotPending, got %v", err)
		}
	})

	t.Run("client cannot submit", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusPending})
		_, err := svc.SubmitCheckpoint(ctx, id, testClientID, checkpoint.SubmitCheckpointDTO{})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown checkpoint", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.SubmitCheckpoint(ctx, 42, testWorkerID, checkpoint.SubmitCheckpointDTO{})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReviewCheckpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("reject returns checkpoint to pending for resubmission", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusPending})

		if _, err := svc.SubmitCheckpoint(ctx, id, testWorkerID, checkpoint.SubmitCheckpointDTO{Notes: "v1"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		snap, err := svc.ReviewCheckpoint(ctx, id, testClientID, checkpoint.ReviewCheckpointDTO{Decision: checkpoint.DecisionReject, Notes: "colors are off"})
		if err != nil {
			t.Fatalf("reject: %v", err)
		}
		cp := snap.Checkpoints[0]
		if cp.Status != checkpoint.StatusPending {
			t.Fatalf("expected pending after rejection, got %s", cp.Status)
		}
		if cp.SubmittedAt != nil {
			t.Fatal("SubmittedAt must be cleared on rejection")
		}
		if cp.ClientNotes != "colors are off" {
			t.Fatalf("review notes not recorded: %+v", cp)
		}

		// Worker may go again.
		if _, err := svc.SubmitCheckpoint(ctx, id, testWorkerID, checkpoint.SubmitCheckpointDTO{Notes: "v2"}); err != nil {
			t.Fatalf("resubmit: %v", err)
		}
	})

	t.Run("accept completes the checkpoint", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusSubmitted})

		snap, err := svc.ReviewCheckpoint(ctx, id, testClientID, checkpoint.ReviewCheckpointDTO{Decision: checkpoint.DecisionAccept})
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		cp := snap.Checkpoints[0]
		if cp.Status != checkpoint.StatusCompleted || cp.CompletedAt == nil {
			t.Fatalf("expected completed with timestamp, got %+v", cp)
		}
		if snap.Progress.Percentage != 100 {
			t.Fatalf("expected 100%%, got %d", snap.Progress.Percentage)
		}
	})

	t.Run("only submitted checkpoints are reviewable", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusPending})
		_, err := svc.ReviewCheckpoint(ctx, id, testClientID, checkpoint.ReviewCheckpointDTO{Decision: checkpoint.DecisionAccept})
		if !errors.Is(err, application.ErrNotSubmitted) {
			t.Fatalf("expected ErrNotSubmitted, got %v", err)
		}
	})

	t.Run("worker cannot review", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		id := st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusSubmitted})
		_, err := svc.ReviewCheckpoint(ctx, id, testWorkerID, checkpoint.ReviewCheckpointDTO{Decision: checkpoint.DecisionAccept})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestListCheckpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("parties see the ordered list", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())
		st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "First", Status: checkpoint.StatusCompleted})
		st.seedCheckpoint(checkpoint.Checkpoint{Order: 2, Title: "Second", Status: checkpoint.StatusPending})

		cps, err := svc.ListCheckpoints(ctx, 1, testWorkerID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cps) != 2 || cps[0].Order != 1 || cps[1].Order != 2 {
			t.Fatalf("unexpected list: %+v", cps)
		}
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.ListCheckpoints(ctx, 1, strangerID)
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
