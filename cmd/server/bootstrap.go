package main

import (
	"context"

	"github.com/tigerapps/tigertaxi/internal/config"
	"github.com/tigerapps/tigertaxi/internal/handlers"
	"github.com/tigerapps/tigertaxi/internal/models"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/internal/utils"
	"github.com/tigerapps/tigertaxi/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application.
type appServices struct {
	taskQueue       services.TaskQueue
	worker          *services.Worker
	reminderService *services.ReminderService
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	rideHandler     *handlers.RideHandler
	requestHandler  *handlers.RideRequestHandler
	riderHandler    *handlers.RiderHandler
}

// bootstrap initializes all application dependencies: database, task queue,
// schedulers, handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Email delivery: notifications enqueue tasks, the processor sends them.
	emailService := services.NewEmailService(&cfg.Mail)
	processEmail := func(_ context.Context, task *services.EmailTask) error {
		return emailService.Send(task.To, task.Subject, task.Body)
	}

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processEmail)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled && taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		worker.SetProcessor(processEmail)
		if err := worker.Start(); err != nil {
			logger.Warn().Err(err).Msg("Failed to start email worker")
			worker = nil
		}
	}

	notifications := services.NewNotificationService(taskQueue, &cfg.Server)

	// Hourly sweep for next-day departure reminder emails
	reminderService := services.NewReminderService(db, notifications)
	reminderService.StartScheduler()

	return &appServices{
		taskQueue:       taskQueue,
		worker:          worker,
		reminderService: reminderService,
		authHandler:     handlers.NewAuthHandler(db, cfg),
		userHandler:     handlers.NewUserHandler(db),
		rideHandler:     handlers.NewRideHandler(db, notifications),
		requestHandler:  handlers.NewRideRequestHandler(db, notifications),
		riderHandler:    handlers.NewRiderHandler(db, notifications),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()
	logger.Info().Msg("Reminder scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
