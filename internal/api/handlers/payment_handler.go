package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"github.com/karyalink/engagement-go/pkg/response"
	"github.com/karyalink/engagement-go/pkg/utils"
)

type PaymentHandler struct {
	svc *application.LifecycleService
}

func NewPaymentHandler(svc *application.LifecycleService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// GetPayments returns the reconciled summary plus the full ledger for the
// caller's active project.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	snap, err := h.svc.ActiveProject(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	summary, entries, err := h.svc.PaymentHistory(c.Request.Context(), snap.Project.ID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"payments": entries,
	})
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var input payment.RecordPaymentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.svc.ActiveProject(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	entry, err := h.svc.RecordPayment(c.Request.Context(), snap.Project.ID, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ConfirmPayment is the payment gateway callback. It is idempotent so
// retried callbacks cannot double-apply.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	entry, err := h.svc.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input payment.RefundPaymentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	entry, err := h.svc.RefundPayment(c.Request.Context(), id, uid, input.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
