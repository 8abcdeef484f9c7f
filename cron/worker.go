package cron

import (
	"context"
	"fmt"
	"time"

	"styledecor/config"
	"styledecor/services/notification"
	"styledecor/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection for the notification queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux routes queued booking events to the push service.
func NewMux(push *notification.PushService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEvent, handleBookingEvent(push))
	return mux
}

func handleBookingEvent(push *notification.PushService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		event, err := tasks.ParseBookingEvent(task)
		if err != nil {
			zap.L().Error("Dropping malformed booking event", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := push.HandleBookingEvent(ctx, event); err != nil {
			zap.L().Warn("Booking event push failed",
				zap.String("type", event.Type), zap.String("bookingId", event.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// InitNotificationWorker starts the asynq worker in the background and returns it for shutdown.
func InitNotificationWorker(push *notification.PushService) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"notifications": 1,
			},
			Logger: zap.S(),
		},
	)
	mux := NewMux(push)

	go func() {
		zap.L().Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			zap.L().Error("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				zap.L().Error("Notification worker gave up; pushes are disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
