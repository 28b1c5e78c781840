package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/pkg/logger"
	"github.com/karyalink/engagement-go/pkg/response"
	"github.com/karyalink/engagement-go/pkg/utils"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EventStreamHandler struct {
	svc *application.LifecycleService
	hub *notify.Hub
}

func NewEventStreamHandler(svc *application.LifecycleService, hub *notify.Hub) *EventStreamHandler {
	return &EventStreamHandler{svc: svc, hub: hub}
}

// StreamProjectEvents pushes lifecycle and chat events for one project over
// a websocket. Delivery is best effort; the canonical state is always the
// snapshot returned by the REST operations.
func (h *EventStreamHandler) StreamProjectEvents(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := h.svc.ProjectForParty(c.Request.Context(), pid, uid); err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(pid)
	defer cancel()

	// Reader goroutine detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
