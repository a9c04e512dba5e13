package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dukkan-app/dukkan-api/docs" // Swagger docs
	"github.com/dukkan-app/dukkan-api/internal/config"
	"github.com/dukkan-app/dukkan-api/internal/database"
	"github.com/dukkan-app/dukkan-api/internal/handlers"
	"github.com/dukkan-app/dukkan-api/internal/jobs"
	"github.com/dukkan-app/dukkan-api/internal/middleware"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
	"github.com/dukkan-app/dukkan-api/internal/services"
	"github.com/dukkan-app/dukkan-api/internal/storage"
	"github.com/dukkan-app/dukkan-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Dukkan API
// @version 1.0
// @description REST API for the Dukkan shop management system

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Uploaded images and thumbnails
	router.Static("/uploads", cfg.StoragePath+"/uploads")

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Check)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:user_id", h.User.Show)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)

				// Full data backup
				admin.GET("/backup", h.Backup.Download)

				// Worker status
				admin.GET("/jobs/status", h.Job.Status)

				// Audit trail
				admin.GET("/activities", h.Activity.Index)
			}

			// Profile update: admin or profile owner only
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)

			// Own profile
			protected.GET("/profile", h.User.Profile)
			protected.PUT("/profile", h.User.UpdateProfile)
			protected.PUT("/profile/password", h.User.ChangePassword)
			protected.POST("/profile/avatar", h.User.UploadAvatar)

			// Inventory
			products := protected.Group("/products")
			{
				products.GET("", h.Product.Index)
				products.POST("", h.Product.Create)
				products.GET("/low_stock", h.Product.LowStock)
				products.GET("/barcode/:code", h.Product.ShowByBarcode)
				products.GET("/:id", h.Product.Show)
				products.PUT("/:id", h.Product.Update)
				products.DELETE("/:id", h.Product.Delete)
				products.POST("/:id/image", h.Product.UploadImage)
			}

			categories := protected.Group("/categories")
			{
				categories.GET("", h.Category.Index)
				categories.POST("", h.Category.Create)
				categories.PUT("/:id", h.Category.Update)
				categories.DELETE("/:id", h.Category.Delete)
			}

			// Customers
			customers := protected.Group("/customers")
			{
				customers.GET("", h.Customer.Index)
				customers.POST("", h.Customer.Create)
				customers.GET("/check", h.Customer.Check)
				customers.GET("/debtors", h.Customer.Debtors)
				customers.GET("/:id", h.Customer.Show)
				customers.PUT("/:id", h.Customer.Update)
				customers.DELETE("/:id", h.Customer.Delete)
				customers.GET("/:id/statement", h.Customer.Statement)
			}

			// Sales
			sales := protected.Group("/sales")
			{
				sales.GET("", h.Sale.Index)
				sales.POST("", h.Sale.Create)
				sales.GET("/:id", h.Sale.Show)
				sales.PUT("/:id", h.Sale.Update)
				sales.DELETE("/:id", h.Sale.Delete)
			}

			// Credit ledger
			credits := protected.Group("/credits")
			{
				credits.GET("", h.Credit.Index)
				credits.POST("", h.Credit.Create)
				credits.GET("/:credit_id", h.Credit.Show)
				credits.PUT("/:credit_id", h.Credit.Update)
				credits.DELETE("/:credit_id", h.Credit.Delete)
				credits.POST("/:credit_id/repayments", h.Credit.Repay)
				credits.POST("/:credit_id/image", h.Credit.UploadImage)
				credits.GET("/:credit_id/image", h.Credit.DownloadImage)
			}

			// Income/expense ledger
			profits := protected.Group("/profits")
			{
				profits.GET("", h.Profit.Index)
				profits.POST("", h.Profit.Create)
				profits.GET("/:id", h.Profit.Show)
				profits.PUT("/:id", h.Profit.Update)
				profits.DELETE("/:id", h.Profit.Delete)
			}

			// Reports
			protected.GET("/reports/financial", h.Report.Financial)
			protected.GET("/reports/financial/export/xlsx", h.Report.ExportXLSX)
			protected.GET("/reports/financial/export/pdf", h.Report.ExportPDF)

			// Image upload
			protected.POST("/upload", h.Upload.Create)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Flag overdue credits every 6 hours
	worker.ScheduleEvery(6*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Scanning for overdue credits...")
		overdue, err := svcs.Credit.FindOverdue(ctx)
		if err != nil {
			return err
		}
		for _, credit := range overdue {
			svcs.Activity.Log(ctx, 0, models.ActionSystem, "Credit", credit.ID,
				"Credit past due for "+credit.CustomerName, "")
		}
		return nil
	})

	// Log a low-stock digest every 12 hours
	worker.ScheduleEvery(12*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking low stock...")
		products, err := svcs.Product.FindLowStock(ctx)
		if err != nil {
			return err
		}
		if len(products) > 0 {
			logger.Warn("Products at or below low-stock threshold", "count", len(products))
		}
		return nil
	})

	// Trim the activity log daily, keeping 90 days
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Trimming activity log...")
		removed, err := svcs.Activity.Trim(ctx, time.Now().AddDate(0, 0, -90))
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("Trimmed activity log", "removed", removed)
		}
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
