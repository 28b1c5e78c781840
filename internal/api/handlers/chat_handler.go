package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/chat"
	"github.com/karyalink/engagement-go/pkg/response"
)

type ChatHandler struct {
	svc *application.LifecycleService
}

func NewChatHandler(svc *application.LifecycleService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// ListMessages pages the active project's conversation oldest to newest.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	snap, err := h.svc.ActiveProject(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}

	var page chat.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	list, err := h.svc.ListMessages(c.Request.Context(), snap.Project.ID, uid, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var input chat.PostMessageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.ActiveProject(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	msg, err := h.svc.PostMessage(c.Request.Context(), snap.Project.ID, uid, input.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
