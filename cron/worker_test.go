package cron

import (
	"context"
	"errors"
	"testing"

	"styledecor/database/repository/memory"
	"styledecor/models"
	"styledecor/services/notification"
	"styledecor/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSender struct{ n int }

func (s *countingSender) Send(context.Context, *messaging.Message) (string, error) {
	s.n++
	return "ok", nil
}

func TestHandleBookingEvent_MalformedPayloadSkipsRetry(t *testing.T) {
	push := notification.NewPushService(memory.NewStore().Users(), &countingSender{}, zap.NewNop())
	handler := handleBookingEvent(push)

	err := handler(context.Background(), asynq.NewTask(tasks.TypeBookingEvent, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleBookingEvent_DeliversQueuedEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	customer := &models.User{Account: models.Account{Email: "ayesha@example.com", Role: models.RoleUser, FCMToken: "tok"}}
	require.NoError(t, store.Users().Create(ctx, customer))

	sender := &countingSender{}
	handler := handleBookingEvent(notification.NewPushService(store.Users(), sender, zap.NewNop()))

	task, opts, err := tasks.NewBookingEventTask(models.BookingEvent{
		Type:          models.EventPaymentConfirmed,
		BookingID:     "b1",
		CustomerEmail: "ayesha@example.com",
	})
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	require.NoError(t, handler(ctx, task))
	assert.Equal(t, 1, sender.n)
}
