// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	catalogRepo "slotwise/database/repository/catalog"
	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/models"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/services/catalog"
	"slotwise/services/events"
	"slotwise/services/notification"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// openStores connects the configured persistence driver and returns its repositories.
func openStores(logger *zap.Logger) (schedulerRepo.SchedulerRepository, catalogRepo.CatalogRepository) {
	switch config.AppConfig.StoreDriver {
	case "postgres":
		database.InitPostgres()
		return schedulerRepo.NewGormSchedulerRepo(database.PostgresDB), catalogRepo.NewGormCatalogRepo(database.PostgresDB)
	case "memory":
		logger.Warn("main: using in-memory store, data is lost on restart")
		return schedulerRepo.NewMemorySchedulerRepo(), catalogRepo.NewMemoryCatalogRepo()
	case "mongo", "":
		database.InitDB()
		db := database.Database()
		return schedulerRepo.NewMongoSchedulerRepo(db), catalogRepo.NewMongoCatalogRepo(db)
	default:
		logger.Sugar().Fatalf("main: unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
		return nil, nil
	}
}

// slotGrid reads the business-open interval from config.
func slotGrid(logger *zap.Logger) models.SlotGrid {
	open, err := models.ParseClock(config.AppConfig.SlotOpen)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid SLOT_OPEN: %v", err)
	}
	closeAt, err := models.ParseClock(config.AppConfig.SlotClose)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid SLOT_CLOSE: %v", err)
	}
	return models.SlotGrid{Open: open, Close: closeAt, StepMinutes: config.AppConfig.SlotStepMinutes}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	// repositories.
	schedRepo, catRepo := openStores(logger)
	indexCtx, cancelIndexes := context.WithTimeout(rootCtx, 30*time.Second)
	if err := schedRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to prepare booking store: %v", err)
	}
	if err := catRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to prepare catalog store: %v", err)
	}
	cancelIndexes()

	utils.InitCache()
	loc := config.AppConfig.Location()

	// notifications.
	var sender notification.Sender
	if file := config.AppConfig.FirebaseCredentialsFile; file != "" {
		fcm, err := utils.NewFCMClient(rootCtx, file)
		if err != nil {
			logger.Warn("main: FCM disabled", zap.Error(err))
		} else {
			sender = fcm
		}
	}
	notificationService, err := notification.NewDefaultNotificationService(catRepo, sender)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// services.
	engine := booking.NewDefaultSchedulingEngine(schedRepo, catRepo, slotGrid(logger), loc)
	engine.Logger = logger
	if utils.CacheClient != nil {
		engine.Cache = booking.NewAvailabilityCache(utils.CacheClient, config.AppConfig.AvailabilityCacheTTL)
	}

	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()
	engine.Observers = append(engine.Observers,
		tasks.NewReminderScheduler(queueClient, config.AppConfig.ReminderLead, loc),
		&notification.BookingPushObserver{Svc: notificationService, Location: loc},
	)

	if url := config.AppConfig.AMQPURL; url != "" {
		publisher, err := events.NewPublisher(url, config.AppConfig.AMQPExchange)
		if err != nil {
			logger.Warn("main: booking events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			engine.Observers = append(engine.Observers, publisher)
		}
	}

	catalogService := catalog.NewDefaultCatalogService(catRepo)

	worker := cron.InitReminderWorker(notificationService, schedRepo)
	defer worker.Shutdown()

	utils.StartHealthMonitor(rootCtx, schedRepo, utils.CacheClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		[]byte(config.AppConfig.JWTSecret),
		handlers.NewBookingHandler(engine),
		handlers.NewCatalogHandler(catalogService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
