package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/api/middleware"
	"github.com/karyalink/engagement-go/internal/api/routes"
	"github.com/karyalink/engagement-go/internal/config"
	"github.com/karyalink/engagement-go/internal/config/db"
	"github.com/karyalink/engagement-go/internal/domain/chat"
	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"github.com/karyalink/engagement-go/internal/domain/project"
	"github.com/karyalink/engagement-go/internal/storage"
	"github.com/karyalink/engagement-go/pkg/logger"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	lg := logger.Init(config.Development)
	defer lg.Sync()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and the deliverable object store
	db.Init()
	storage.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&project.Project{},
		&checkpoint.Checkpoint{},
		&chat.Message{},
		&payment.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, db.DB, config.OperationTimeout)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
