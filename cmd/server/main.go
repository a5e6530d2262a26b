package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	calendarapp "github.com/workhub/backend/internal/application/calendar"
	directoryapp "github.com/workhub/backend/internal/application/directory"
	documentapp "github.com/workhub/backend/internal/application/document"
	messagingapp "github.com/workhub/backend/internal/application/messaging"
	projectapp "github.com/workhub/backend/internal/application/project"
	taskapp "github.com/workhub/backend/internal/application/task"
	"github.com/workhub/backend/internal/infrastructure/config"
	"github.com/workhub/backend/internal/infrastructure/logger"
	"github.com/workhub/backend/internal/infrastructure/persistence"
	"github.com/workhub/backend/internal/infrastructure/storage"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
	"github.com/workhub/backend/internal/interfaces/http/handler"
	"github.com/workhub/backend/internal/interfaces/http/middleware"
	"github.com/workhub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting WorkHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Run schema migrations on startup
	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Initialize metrics
	ctx := context.Background()
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	var workspaceMetrics *telemetry.WorkspaceMetrics
	if cfg.Telemetry.Enabled {
		workspaceMetrics, err = telemetry.NewWorkspaceMetrics(telemetry.WorkspaceMetricsConfig{
			Meter:  meterProvider.Meter("workhub"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to initialize workspace metrics", zap.Error(err))
		}
		log.Info("Metrics export enabled", zap.String("endpoint", cfg.Telemetry.CollectorEndpoint))
	}

	// Initialize blob storage
	var blobStore documentapp.BlobStorage
	var localStore *storage.LocalBlobStorage
	switch cfg.Storage.Backend {
	case "s3":
		s3Store, err := storage.NewS3BlobStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 blob storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		blobStore = s3Store
		log.Info("Blob storage ready",
			zap.String("backend", "s3"),
			zap.String("bucket", cfg.Storage.Bucket),
		)
	default:
		localStore, err = storage.NewLocalBlobStorage(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatal("Failed to initialize local blob storage", zap.Error(err))
		}
		blobStore = localStore
		log.Info("Blob storage ready",
			zap.String("backend", "local"),
			zap.String("dir", localStore.Root()),
		)
	}
	blobStore = storage.NewInstrumentedBlobStorage(blobStore, cfg.Storage.Backend, workspaceMetrics)

	// Initialize repositories
	contactRepo := persistence.NewGormContactRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	folderRepo := persistence.NewGormFolderRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)

	// Initialize application services
	contactService := directoryapp.NewContactService(contactRepo)
	taskService := taskapp.NewTaskService(taskRepo, contactRepo)
	messageService := messagingapp.NewMessageService(messageRepo, contactRepo)
	folderService := documentapp.NewFolderService(folderRepo, documentRepo, contactRepo)
	documentService := documentapp.NewDocumentService(documentRepo, folderRepo, contactRepo, blobStore)
	eventService := calendarapp.NewEventService(eventRepo, contactRepo, taskRepo)
	projectService := projectapp.NewProjectService(projectRepo, contactRepo, taskRepo, documentRepo, eventRepo)

	if workspaceMetrics != nil {
		contactService.SetMetrics(workspaceMetrics)
		taskService.SetMetrics(workspaceMetrics)
		messageService.SetMetrics(workspaceMetrics)
		documentService.SetMetrics(workspaceMetrics)
		eventService.SetMetrics(workspaceMetrics)
		projectService.SetMetrics(workspaceMetrics)
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db.DB)
	contactHandler := handler.NewContactHandler(contactService)
	taskHandler := handler.NewTaskHandler(taskService)
	messageHandler := handler.NewMessageHandler(messageService)
	folderHandler := handler.NewFolderHandler(folderService)
	documentHandler := handler.NewDocumentHandler(documentService)
	eventHandler := handler.NewEventHandler(eventService)
	projectHandler := handler.NewProjectHandler(projectService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. HTTPMetrics - Record per-request metrics
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	// Serve stored blobs directly when running on the local backend
	if localStore != nil {
		engine.Static("/blobs", localStore.Root())
	}

	// Register routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		RegisterSystem(systemHandler).
		RegisterTenant(
			contactHandler,
			taskHandler,
			messageHandler,
			folderHandler,
			documentHandler,
			eventHandler,
			projectHandler,
		).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level onto GORM's logger levels.
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
