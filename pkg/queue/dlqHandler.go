package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultDLQKey = "boxoffice:notifications:dlq"

// FailedNotification is a notification that ran out of delivery attempts.
type FailedNotification struct {
	Notification entity.Notification `json:"notification"`
	Error        string              `json:"error"`
	FailedAt     time.Time           `json:"failed_at"`
}

// DLQHandler keeps undeliverable notifications so an operator can inspect and requeue them.
type DLQHandler interface {
	HandleFailed(ctx context.Context, n *entity.Notification, err error) error
	GetFailed(ctx context.Context, limit int) ([]*FailedNotification, error)
	Remove(ctx context.Context, notificationID string) (*FailedNotification, error)
	Size(ctx context.Context) (int64, error)
}

// RedisDLQHandler stores failed notifications in a sorted set scored by failure time.
type RedisDLQHandler struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisDLQHandler(client *redis.Client, key string) *RedisDLQHandler {
	if key == "" {
		key = DefaultDLQKey
	}
	return &RedisDLQHandler{
		client: client,
		key:    key,
		now:    time.Now,
	}
}

func (d *RedisDLQHandler) HandleFailed(ctx context.Context, n *entity.Notification, cause error) error {
	failed := &FailedNotification{
		Notification: *n,
		Error:        cause.Error(),
		FailedAt:     d.now(),
	}

	data, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("failed to marshal failed notification: %w", err)
	}

	score := float64(failed.FailedAt.UnixNano()) / 1e9
	if err := d.client.ZAdd(ctx, d.key, redis.Z{Score: score, Member: data}).Err(); err != nil {
		return fmt.Errorf("failed to store notification in DLQ: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"customer_id":     n.CustomerID,
		"attempts":        n.Attempts,
	}).Warn("Notification moved to DLQ")
	return nil
}

// GetFailed returns the newest failures first.
func (d *RedisDLQHandler) GetFailed(ctx context.Context, limit int) ([]*FailedNotification, error) {
	if limit <= 0 {
		limit = 50
	}

	members, err := d.client.ZRevRange(ctx, d.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read DLQ: %w", err)
	}

	failed := make([]*FailedNotification, 0, len(members))
	for _, member := range members {
		var f FailedNotification
		if err := json.Unmarshal([]byte(member), &f); err != nil {
			logrus.WithError(err).Warn("Skipping unreadable DLQ entry")
			continue
		}
		failed = append(failed, &f)
	}
	return failed, nil
}

// Remove deletes the entry for notificationID and returns it.
func (d *RedisDLQHandler) Remove(ctx context.Context, notificationID string) (*FailedNotification, error) {
	members, err := d.client.ZRange(ctx, d.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read DLQ: %w", err)
	}

	for _, member := range members {
		var f FailedNotification
		if err := json.Unmarshal([]byte(member), &f); err != nil {
			continue
		}
		if f.Notification.ID != notificationID {
			continue
		}

		if err := d.client.ZRem(ctx, d.key, member).Err(); err != nil {
			return nil, fmt.Errorf("failed to remove notification from DLQ: %w", err)
		}
		return &f, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotInDLQ, notificationID)
}

func (d *RedisDLQHandler) Size(ctx context.Context) (int64, error) {
	return d.client.ZCard(ctx, d.key).Result()
}
