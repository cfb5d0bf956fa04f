package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/queue"

	"github.com/sirupsen/logrus"
)

var ErrNotificationsDisabled = errors.New("notification dead letter queue is not configured")

type notificationService struct {
	dlq      queue.DLQHandler
	notifier Notifier
}

// NewNotificationService exposes the dead letter queue. Both arguments may be nil.
func NewNotificationService(dlq queue.DLQHandler, notifier Notifier) NotificationService {
	return &notificationService{
		dlq:      dlq,
		notifier: notifier,
	}
}

func (s *notificationService) ListFailed(ctx context.Context, limit int) (*FailedNotifications, error) {
	if s.dlq == nil {
		return nil, ErrNotificationsDisabled
	}

	failed, err := s.dlq.GetFailed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed notifications: %w", err)
	}
	total, err := s.dlq.Size(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count failed notifications: %w", err)
	}
	return &FailedNotifications{Items: failed, Total: total}, nil
}

// Requeue takes a notification out of the dead letter queue and enqueues it again
// with a fresh attempt count.
func (s *notificationService) Requeue(ctx context.Context, notificationID string) (*entity.Notification, error) {
	if s.dlq == nil || s.notifier == nil {
		return nil, ErrNotificationsDisabled
	}

	failed, err := s.dlq.Remove(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	n := failed.Notification
	n.Attempts = 0
	if err := s.notifier.Notify(ctx, &n); err != nil {
		if restoreErr := s.dlq.HandleFailed(ctx, &failed.Notification, errors.New(failed.Error)); restoreErr != nil {
			logrus.WithError(restoreErr).Error("Failed to restore notification to DLQ")
		}
		return nil, fmt.Errorf("failed to requeue notification: %w", err)
	}

	logrus.WithField("notification_id", n.ID).Info("Notification requeued from DLQ")
	return &n, nil
}
