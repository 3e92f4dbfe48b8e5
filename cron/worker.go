package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"slotwise/config"
	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async worker in background. The returned server
// is shut down by the caller.
func InitReminderWorker(notifSvc notification.NotificationService, repo schedulerRepo.SchedulerRepository) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(notifSvc, repo))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker giving up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask delivers a reminder unless the booking was cancelled,
// moved or reassigned after the reminder was enqueued.
func HandleReminderTask(notifSvc notification.NotificationService, repo schedulerRepo.SchedulerRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return asynq.SkipRetry
		}

		b, err := repo.GetBookingByID(ctx, p.BookingID)
		if errors.Is(err, schedulerRepo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !b.Active() || b.EmployeeID != p.EmployeeID || b.StartAt.UTC().Format(time.RFC3339) != p.StartAt {
			logger.Debug("Skipping stale reminder", zap.String("bookingID", p.BookingID))
			return nil
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
			"type":      "reminder",
		}
		err = notifSvc.SendEmployeePushNotification(ctx, b.EmployeeID, p.Title, p.Body, data)
		if errors.Is(err, notification.ErrNoPushTarget) {
			return nil
		}
		if err != nil {
			logger.Warn("Failed to send reminder", zap.String("bookingID", p.BookingID), zap.Error(err))
		}
		return err
	}
}
