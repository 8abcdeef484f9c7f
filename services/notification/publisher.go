package notification

import (
	"context"
	"fmt"

	"styledecor/models"
	"styledecor/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Publisher hands booking events to the notification pipeline.
type Publisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// NopPublisher drops events; used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.BookingEvent) error { return nil }

// QueuePublisher enqueues events on the asynq queue.
type QueuePublisher struct {
	Client *asynq.Client
}

func NewQueuePublisher(client *asynq.Client) *QueuePublisher {
	return &QueuePublisher{Client: client}
}

func (p *QueuePublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	task, opts, err := tasks.NewBookingEventTask(event)
	if err != nil {
		return err
	}
	if _, err := p.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event.Type, err)
	}
	return nil
}

// PublishBestEffort publishes event and only logs failures. A nil publisher is a no-op.
func PublishBestEffort(ctx context.Context, p Publisher, event models.BookingEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		zap.L().Warn("booking event not published",
			zap.String("type", event.Type),
			zap.String("bookingId", event.BookingID),
			zap.Error(err))
	}
}
