package main

import (
	"context"
	"hostel_complaints_go/config"
	"hostel_complaints_go/db"
	"hostel_complaints_go/handlers"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"hostel_complaints_go/services/jobs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Hostel{},
		&models.User{},
		&models.Session{},
		&models.ComplaintStatus{},
		&models.Complaint{},
		&models.ComplaintComment{},
		&models.ComplaintReply{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed lookup data and the first admin
	if err := services.SeedComplaintStatuses(db.DB); err != nil {
		log.Fatalf("Failed to seed complaint statuses: %v", err)
	}
	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Printf("[SEED] Failed to seed admin user: %v", err)
	}

	// Initialize storage (R2 or local filesystem)
	services.InitializeStorage(cfg)

	// Background jobs
	scheduler, err := jobs.StartScheduler(db.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("6M"))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Locally stored complaint pictures
	e.Static("/"+cfg.UploadDir, cfg.UploadDir)

	// Public routes
	e.GET("/health", handlers.HealthHandler)
	e.POST("/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Authenticated routes
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	protected.Use(middleware.AuditContext())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/api/me", handlers.MeHandler)

		protected.GET("/api/complaints", handlers.ListOwnComplaintsHandler)
		protected.POST("/api/complaints", handlers.CreateComplaintHandler, middleware.ComplaintRateLimiter.Middleware())
		protected.POST("/api/complaints/image", handlers.UploadComplaintImageHandler, middleware.ComplaintRateLimiter.Middleware())
		protected.GET("/api/complaints/:id", handlers.GetComplaintHandler)
		protected.GET(services.ComplaintImageRoute+"*", handlers.ComplaintImageHandler)
		protected.GET("/api/complaints/:id/comments", handlers.ListCommentsHandler)
		protected.POST("/api/complaints/:id/comments", handlers.AddCommentHandler, middleware.ComplaintRateLimiter.Middleware())
		protected.POST("/api/comments/:id/replies", handlers.AddReplyHandler, middleware.ComplaintRateLimiter.Middleware())

		protected.GET("/api/statuses", handlers.ListStatusesHandler)
		protected.GET("/api/hostels", handlers.ListHostelsHandler)
	}

	// Admin routes
	admin := protected.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/complaints", handlers.ListAllComplaintsHandler)
		admin.GET("/complaints/export", handlers.ExportComplaintsHandler)
		admin.PUT("/complaints/:id/status", handlers.EditComplaintStatusHandler)
		admin.DELETE("/complaints/:id", handlers.DeleteComplaintHandler)
		admin.GET("/complaints/:id/history", handlers.GetComplaintHistoryHandler)
		admin.GET("/audit-logs", handlers.GetAuditLogsHandler)
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
