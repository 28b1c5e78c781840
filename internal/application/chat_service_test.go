package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/chat"
	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
)

func TestPostMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("either party may post", func(t *testing.T) {
		svc, st := newFixture(t, inProgressProject())

		m, err := svc.PostMessage(ctx, 1, testWorkerID, "uploaded the first draft")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID == 0 || m.SenderID != testWorkerID {
			t.Fatalf("unexpected message: %+v", m)
		}
		if _, err := svc.PostMessage(ctx, 1, testClientID, "looks good, reviewing now"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(st.messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(st.messages))
		}
	})

	t.Run("whitespace-only body is rejected", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.PostMessage(ctx, 1, testWorkerID, "   \n\t ")
		if !errors.Is(err, application.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage, got %v", err)
		}
	})

	t.Run("strangers cannot post", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.PostMessage(ctx, 1, strangerID, "hello")
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("pages oldest to newest with a cursor", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		for i := 0; i < 5; i++ {
			if _, err := svc.PostMessage(ctx, 1, testWorkerID, fmt.Sprintf("update %d", i)); err != nil {
				t.Fatalf("post %d: %v", i, err)
			}
		}

		first, err := svc.ListMessages(ctx, 1, testClientID, chat.Page{Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Messages) != 2 || first.Messages[0].Body != "update 0" {
			t.Fatalf("unexpected first page: %+v", first.Messages)
		}

		second, err := svc.ListMessages(ctx, 1, testClientID, chat.Page{AfterID: first.NextCursor, Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Messages) != 2 || second.Messages[0].Body != "update 2" {
			t.Fatalf("cursor did not advance: %+v", second.Messages)
		}

		last, err := svc.ListMessages(ctx, 1, testClientID, chat.Page{AfterID: second.NextCursor, Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(last.Messages) != 1 || last.Messages[0].Body != "update 4" {
			t.Fatalf("unexpected last page: %+v", last.Messages)
		}
	})

	t.Run("strangers cannot read", func(t *testing.T) {
		svc, _ := newFixture(t, inProgressProject())
		_, err := svc.ListMessages(ctx, 1, strangerID, chat.Page{})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

// Concurrent mutations on one project must serialize; none may be lost and
// none may observe a half-applied peer.
func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	svc, st := newFixture(t, inProgressProject())
	st.seedCheckpoint(checkpoint.Checkpoint{Order: 1, Title: "Draft", Status: checkpoint.StatusSubmitted})

	const posters = 8
	var wg sync.WaitGroup
	errs := make(chan error, posters+1)

	for i := 0; i < posters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.PostMessage(ctx, 1, testWorkerID, fmt.Sprintf("msg %d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.ReviewCheckpoint(ctx, 1, testClientID, checkpoint.ReviewCheckpointDTO{Decision: checkpoint.DecisionAccept}); err != nil {
			errs <- err
		}
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.messages) != posters {
		t.Fatalf("expected %d messages, got %d", posters, len(st.messages))
	}
	if st.checkpoints[0].Status != checkpoint.StatusCompleted {
		t.Fatalf("expected review to land, got %s", st.checkpoints[0].Status)
	}
}
