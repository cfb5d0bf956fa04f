package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationServiceRequeue(t *testing.T) {
	dlq := &fakeDLQ{}
	notifier := &fakeNotifier{}
	svc := NewNotificationService(dlq, notifier)
	ctx := context.Background()

	require.NoError(t, dlq.HandleFailed(ctx, &entity.Notification{ID: "n1", Attempts: 3}, errors.New("chat not found")))
	require.NoError(t, dlq.HandleFailed(ctx, &entity.Notification{ID: "n2", Attempts: 3}, errors.New("timeout")))

	failed, err := svc.ListFailed(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, failed.Items, 2)
	assert.Equal(t, int64(2), failed.Total)

	page, err := svc.ListFailed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Total, "total counts the whole queue")

	n, err := svc.Requeue(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Attempts)
	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, "n1", notifier.notifications[0].ID)
	assert.Len(t, dlq.failed, 1)

	_, err = svc.Requeue(ctx, "missing")
	assert.ErrorIs(t, err, queue.ErrNotInDLQ)
}

func TestNotificationServiceRequeueFailureRestoresEntry(t *testing.T) {
	dlq := &fakeDLQ{}
	svc := NewNotificationService(dlq, &fakeNotifier{err: errors.New("queue down")})
	ctx := context.Background()

	require.NoError(t, dlq.HandleFailed(ctx, &entity.Notification{ID: "n1", Attempts: 3}, errors.New("timeout")))

	_, err := svc.Requeue(ctx, "n1")
	assert.Error(t, err)
	require.Len(t, dlq.failed, 1)
	assert.Equal(t, "n1", dlq.failed[0].Notification.ID)
	assert.Equal(t, 3, dlq.failed[0].Notification.Attempts)
}

func TestNotificationServiceDisabled(t *testing.T) {
	svc := NewNotificationService(nil, nil)

	_, err := svc.ListFailed(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotificationsDisabled)
	_, err = svc.Requeue(context.Background(), "n1")
	assert.ErrorIs(t, err, ErrNotificationsDisabled)
}
