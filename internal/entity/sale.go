package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaleReceipt describes one completed sale.
type SaleReceipt struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ItemCode        string     `json:"item_code" db:"item_code"`
	ItemName        string     `json:"item_name" db:"item_name"`
	CustomerID      string     `json:"customer_id" db:"customer_id"`
	Quantity        int        `json:"quantity" db:"quantity"`
	UnitPrice       float64    `json:"unit_price" db:"unit_price"`
	GrossAmount     float64    `json:"gross_amount" db:"gross_amount"`
	NetAmount       float64    `json:"net_amount" db:"net_amount"`
	DiscountApplied bool       `json:"discount_applied" db:"discount_applied"`
	PremiumUpgrade  bool       `json:"premium_upgrade" db:"premium_upgrade"`
	ItemStatus      ItemStatus `json:"item_status" db:"-"`
	ScheduledAt     time.Time  `json:"scheduled_at" db:"scheduled_at"`
	SoldAt          time.Time  `json:"sold_at" db:"sold_at"`
}

// Purchase is the history snapshot the receipt leaves on the customer.
func (r *SaleReceipt) Purchase() Purchase {
	return Purchase{
		ItemName:    r.ItemName,
		ItemCode:    r.ItemCode,
		ScheduledAt: r.ScheduledAt,
		Quantity:    r.Quantity,
		AmountPaid:  r.NetAmount,
		PurchasedAt: r.SoldAt,
	}
}

// SaleMessage is published to the sales topic after every completed sale.
type SaleMessage struct {
	Event      string      `json:"event"`
	Receipt    SaleReceipt `json:"receipt"`
	OccurredAt time.Time   `json:"occurred_at"`
}

const SaleCompletedEvent = "sale.completed"
