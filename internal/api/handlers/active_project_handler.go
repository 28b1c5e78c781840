package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/domain/project"
	"github.com/karyalink/engagement-go/internal/api/middleware"
	"github.com/karyalink/engagement-go/internal/storage"
	"github.com/karyalink/engagement-go/pkg/response"
	"github.com/karyalink/engagement-go/pkg/utils"
)

type ActiveProjectHandler struct {
	svc *application.LifecycleService
}

func NewActiveProjectHandler(svc *application.LifecycleService) *ActiveProjectHandler {
	return &ActiveProjectHandler{svc: svc}
}

// callerID extracts the verified user id or aborts with 401.
func callerID(c *gin.Context) (uint, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "missing identity"})
		return 0, false
	}
	return claims.UserID, true
}

// activeProjectID resolves the caller's current engagement.
func (h *ActiveProjectHandler) activeProjectID(c *gin.Context, userID uint) (uint, bool) {
	snap, err := h.svc.ActiveProject(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	return snap.Project.ID, true
}

// GetActiveProject returns the caller's non-terminal project with fresh
// progress figures, or 404 when none exists.
func (h *ActiveProjectHandler) GetActiveProject(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	snap, err := h.svc.ActiveProject(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":  snap.Project,
		"progress": snap.Progress,
	})
}

func (h *ActiveProjectHandler) StartWork(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, ok := h.activeProjectID(c, uid)
	if !ok {
		return
	}
	snap, err := h.svc.StartWork(c.Request.Context(), pid, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ActiveProjectHandler) RequestCompletion(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var input project.RequestCompletionDTO
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	pid, ok := h.activeProjectID(c, uid)
	if !ok {
		return
	}
	result, err := h.svc.RequestCompletion(c.Request.Context(), pid, uid, input.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ActiveProjectHandler) ApproveCompletion(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input project.ApproveCompletionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.ApproveCompletion(c.Request.Context(), pid, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ActiveProjectHandler) RejectCompletion(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input project.RejectCompletionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.RejectCompletion(c.Request.Context(), pid, uid, input.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ActiveProjectHandler) Cancel(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input project.CancelDTO
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.Cancel(c.Request.Context(), pid, uid, input.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ActiveProjectHandler) ListCheckpoints(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	pid, ok := h.activeProjectID(c, uid)
	if !ok {
		return
	}
	cps, err := h.svc.ListCheckpoints(c.Request.Context(), pid, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkpoints": cps})
}

func (h *ActiveProjectHandler) CreateCheckpoint(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var input checkpoint.CreateCheckpointDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	pid, ok := h.activeProjectID(c, uid)
	if !ok {
		return
	}
	snap, err := h.svc.CreateCheckpoint(c.Request.Context(), pid, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// SubmitCheckpoint accepts a multipart body: a notes field plus deliverable
// files, which are handed to the upload service; only the returned opaque
// references are persisted.
func (h *ActiveProjectHandler) SubmitCheckpoint(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	cpID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "multipart body required"})
		return
	}

	input := checkpoint.SubmitCheckpointDTO{Notes: c.PostForm("notes")}
	if files := form.File["deliverables"]; len(files) > 0 {
		if storage.Store == nil {
			writeError(c, application.ErrUnavailable)
			return
		}
		pid, ok := h.activeProjectID(c, uid)
		if !ok {
			return
		}
		for _, fh := range files {
			ref, err := storage.Store.Save(c.Request.Context(), pid, cpID, fh)
			if err != nil {
				writeError(c, application.ErrUnavailable)
				return
			}
			input.DeliverableRefs = append(input.DeliverableRefs, ref)
		}
	}

	snap, err := h.svc.SubmitCheckpoint(c.Request.Context(), cpID, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ActiveProjectHandler) ReviewCheckpoint(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	cpID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input checkpoint.ReviewCheckpointDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.ReviewCheckpoint(c.Request.Context(), cpID, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
