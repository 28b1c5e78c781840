package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/api/handlers"
	"github.com/karyalink/engagement-go/internal/api/middleware"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/internal/repository"
	"github.com/karyalink/engagement-go/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RegisterRoutes wires the full HTTP surface: the role-scoped
// active-project operations, the payment gateway callback, the websocket
// event stream, plus health and metrics endpoints.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, operationTimeout time.Duration) *application.LifecycleService {
	repos := repository.NewRepositories(db)
	hub := notify.NewHub()
	svc := application.NewLifecycleService(repos, hub, operationTimeout)
	h := handlers.New(svc, hub)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		ap := api.Group("/active-project")
		{
			ap.GET("", h.ActiveProject.GetActiveProject)
			ap.POST("/start", middleware.RequireRole(types.RoleWorker), h.ActiveProject.StartWork)
			ap.POST("/request-completion", middleware.RequireRole(types.RoleWorker), h.ActiveProject.RequestCompletion)
			ap.POST("/:id/complete", middleware.RequireRole(types.RoleClient), h.ActiveProject.ApproveCompletion)
			ap.POST("/:id/reject-completion", middleware.RequireRole(types.RoleClient), h.ActiveProject.RejectCompletion)
			ap.POST("/:id/cancel", h.ActiveProject.Cancel)

			ap.GET("/checkpoints", h.ActiveProject.ListCheckpoints)
			ap.POST("/checkpoints", middleware.RequireRole(types.RoleClient), h.ActiveProject.CreateCheckpoint)
			ap.POST("/checkpoint/:id/submit", middleware.RequireRole(types.RoleWorker), h.ActiveProject.SubmitCheckpoint)
			ap.POST("/checkpoint/:id/review", middleware.RequireRole(types.RoleClient), h.ActiveProject.ReviewCheckpoint)

			ap.GET("/chat", h.Chat.ListMessages)
			ap.POST("/chat", h.Chat.PostMessage)

			ap.GET("/payment", h.Payment.GetPayments)
			ap.POST("/payment", middleware.RequireRole(types.RoleClient), h.Payment.RecordPayment)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/:id/confirm", h.Payment.ConfirmPayment)
			payments.POST("/:id/refund", middleware.RequireRole(types.RoleClient), h.Payment.RefundPayment)
		}

		api.GET("/ws/active-project/:id/events", h.Events.StreamProjectEvents)
	}

	return svc
}
