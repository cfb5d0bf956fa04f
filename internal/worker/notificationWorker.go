package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/queue"
	"github.com/ds124wfegd/boxoffice/pkg/rabbitMQ"

	"github.com/sirupsen/logrus"
)

// MessageSender delivers a text to a chat, e.g. the Telegram bot.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

type NotificationWorker struct {
	queue  rabbitMQ.Queue
	sender MessageSender
	chatID string
	retry  *queue.RetryManager
	dlq    queue.DLQHandler
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewNotificationWorker reads notifications from q. Without a sender they are only
// logged. dlq may be nil, in which case exhausted notifications are dropped.
func NewNotificationWorker(q rabbitMQ.Queue, sender MessageSender, chatID string, retry *queue.RetryManager, dlq queue.DLQHandler) *NotificationWorker {
	return &NotificationWorker{
		queue:  q,
		sender: sender,
		chatID: chatID,
		retry:  retry,
		dlq:    dlq,
		sleep:  sleepCtx,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	if err := w.queue.Consume(ctx, func(body []byte) error {
		return w.Handle(ctx, body)
	}); err != nil {
		return fmt.Errorf("failed to start notification worker: %w", err)
	}

	logrus.Info("Notification worker started")
	return nil
}

// Handle delivers one queued notification, retrying transient failures.
// It returns an error only for unreadable messages or when ctx ends mid-retry,
// in which case the notification is left for the queue to redeliver.
func (w *NotificationWorker) Handle(ctx context.Context, body []byte) error {
	var n entity.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("invalid notification payload: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"customer_id":     n.CustomerID,
		"type":            n.Type,
	})

	for attempt := 1; ; attempt++ {
		n.Attempts = attempt

		err := w.deliver(ctx, &n)
		if err == nil {
			log.WithField("attempts", attempt).Info("Notification delivered")
			return nil
		}

		if ctx.Err() != nil {
			log.WithError(err).Warn("Notification delivery interrupted")
			return ctx.Err()
		}

		retry, delay := w.retry.ShouldRetry(attempt, err)
		if !retry {
			log.WithError(err).WithField("attempts", attempt).Error("Notification delivery failed")
			w.deadLetter(ctx, &n, err)
			return nil
		}

		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("Notification delivery failed, retrying")

		if err := w.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, n *entity.Notification) error {
	if w.sender == nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": n.CustomerID,
			"title":       n.Title,
		}).Info(n.Message)
		return nil
	}
	return w.sender.SendMessage(ctx, w.chatID, formatNotification(n))
}

func (w *NotificationWorker) deadLetter(ctx context.Context, n *entity.Notification, cause error) {
	if w.dlq == nil {
		return
	}
	if err := w.dlq.HandleFailed(ctx, n, cause); err != nil {
		logrus.WithError(err).WithField("notification_id", n.ID).Error("Failed to move notification to DLQ")
	}
}

func formatNotification(n *entity.Notification) string {
	return fmt.Sprintf("%s\n\n%s\n\nCustomer: %s", n.Title, n.Message, n.CustomerID)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
