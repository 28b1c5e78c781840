// Package notify is the in-process seam to the notification collaborator.
// Lifecycle events are published fire-and-forget; a slow or absent consumer
// never blocks an operation.
package notify

import (
	"sync"
	"time"
)

const (
	EventProjectStarted      = "project.started"
	EventCompletionRequested = "project.completion_requested"
	EventCompletionRejected  = "project.completion_rejected"
	EventProjectCompleted    = "project.completed"
	EventProjectCancelled    = "project.cancelled"
	EventCheckpointCreated   = "checkpoint.created"
	EventCheckpointSubmitted = "checkpoint.submitted"
	EventCheckpointReviewed  = "checkpoint.reviewed"
	EventChatMessage         = "chat.message"
	EventPaymentRecorded     = "payment.recorded"
	EventPaymentConfirmed    = "payment.confirmed"
	EventPaymentRefunded     = "payment.refunded"
)

type Event struct {
	ProjectID uint      `json:"project_id"`
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

const subscriberBuffer = 16

// Hub fans lifecycle events out to per-project subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one project's events. The returned
// cancel func must be called to release the subscription.
func (h *Hub) Subscribe(projectID uint) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[projectID] == nil {
		h.subs[projectID] = make(map[chan Event]struct{})
	}
	h.subs[projectID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[projectID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, projectID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish delivers ev to current subscribers. Events for a full subscriber
// buffer are dropped rather than blocking the publisher.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[ev.ProjectID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
