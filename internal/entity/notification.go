package entity

import (
	"time"
)

type NotificationType string

const (
	NotificationPurchaseReceipt NotificationType = "purchase_receipt"
	NotificationPremiumUpgrade  NotificationType = "premium_upgrade"
)

// Notification is a message for a customer, delivered by the notification worker.
type Notification struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	CustomerID string           `json:"customer_id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	SaleID     string           `json:"sale_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Attempts   int              `json:"attempts"`
}
