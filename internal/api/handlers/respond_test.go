package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/application"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{application.ErrNotFound, http.StatusNotFound},
		{application.ErrForbidden, http.StatusForbidden},
		{application.ErrInvalidState, http.StatusConflict},
		{application.ErrInvalidOrder, http.StatusConflict},
		{application.ErrNotPending, http.StatusConflict},
		{application.ErrNotSubmitted, http.StatusConflict},
		{application.ErrHasCompletedPayments, http.StatusConflict},
		{application.ErrEmptyMessage, http.StatusUnprocessableEntity},
		{application.ErrExceedsBudget, http.StatusUnprocessableEntity},
		{application.ErrNotCompleted, http.StatusUnprocessableEntity},
		{application.ErrUnavailable, http.StatusServiceUnavailable},
		{errors.Join(application.ErrUnavailable, errors.New("dial tcp: refused")), http.StatusServiceUnavailable},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v -> %d", tc.err, tc.want), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeError(c, tc.err)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
