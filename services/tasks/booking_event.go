package tasks

import (
	"encoding/json"
	"fmt"

	"styledecor/models"

	"github.com/hibiken/asynq"
)

const TypeBookingEvent = "booking:event"

// NewBookingEventTask packages a booking event for the worker queue.
func NewBookingEventTask(event models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEvent, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Queue("notifications")}
	return task, opts, nil
}

// ParseBookingEvent decodes a task payload produced by NewBookingEventTask.
func ParseBookingEvent(task *asynq.Task) (models.BookingEvent, error) {
	var event models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("invalid %s payload: %w", TypeBookingEvent, err)
	}
	return event, nil
}
