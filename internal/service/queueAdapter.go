package service

import (
	"context"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/pkg/kafka"
	"github.com/ds124wfegd/boxoffice/pkg/rabbitMQ"
)

// KafkaSalePublisher publishes sale.completed messages keyed by item code.
type KafkaSalePublisher struct {
	producer kafka.Producer
}

func NewKafkaSalePublisher(p kafka.Producer) *KafkaSalePublisher {
	return &KafkaSalePublisher{producer: p}
}

func (a *KafkaSalePublisher) PublishSale(ctx context.Context, receipt *entity.SaleReceipt) error {
	if a.producer == nil {
		return nil
	}

	msg := entity.SaleMessage{
		Event:      entity.SaleCompletedEvent,
		Receipt:    *receipt,
		OccurredAt: time.Now(),
	}
	return a.producer.SendMessage(ctx, receipt.ItemCode, msg)
}

// QueueNotifier puts notifications on the RabbitMQ queue read by the notification worker.
type QueueNotifier struct {
	queue rabbitMQ.Queue
}

func NewQueueNotifier(q rabbitMQ.Queue) *QueueNotifier {
	return &QueueNotifier{queue: q}
}

func (a *QueueNotifier) Notify(ctx context.Context, n *entity.Notification) error {
	if a.queue == nil {
		return nil
	}
	return a.queue.Publish(ctx, n)
}
