package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ItemStatus string

const (
	ItemStatusAvailable  ItemStatus = "available"
	ItemStatusSoldOut    ItemStatus = "sold_out"
	ItemStatusCancelled  ItemStatus = "cancelled"
	ItemStatusInProgress ItemStatus = "in_progress"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusSoldOut, ItemStatusCancelled, ItemStatusInProgress:
		return true
	}
	return false
}

type ItemKind string

const (
	KindShowing ItemKind = "showing"
	KindEvent   ItemKind = "event"
)

const dateTimeLayout = "02/01/2006 15:04"

// BookableItem is anything the box office sells tickets for.
// The set of implementations is closed: CinemaShowing and SpecialEvent.
type BookableItem interface {
	Kind() ItemKind
	Code() string
	Name() string
	ScheduledAt() time.Time
	BasePrice() float64
	Status() ItemStatus
	Capacity() int
	SoldCount() int

	SetName(name string) error
	SetScheduledAt(at time.Time) error
	SetBasePrice(price float64) error
	SetStatus(status ItemStatus) error
	SetSoldCount(sold int) error

	// UnitPrice is the price of one ticket, rounded to cents. It has no side effects.
	UnitPrice() float64
	Describe() string
	Sell(quantity int) bool
	View() ItemView

	bookable()
}

// ItemView is the JSON shape of a bookable item.
type ItemView struct {
	Kind        ItemKind        `json:"kind"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ScheduledAt CustomTime      `json:"scheduled_at"`
	BasePrice   float64         `json:"base_price"`
	UnitPrice   float64         `json:"unit_price"`
	Status      ItemStatus      `json:"status"`
	Capacity    int             `json:"capacity"`
	Sold        int             `json:"sold"`
	Showing     *ShowingDetails `json:"showing,omitempty"`
	Event       *EventDetails   `json:"event,omitempty"`
}

// itemBase carries the fields and inventory bookkeeping shared by every variant.
type itemBase struct {
	code        string
	name        string
	scheduledAt time.Time
	basePrice   float64
	status      ItemStatus
	capacity    int
	sold        int
}

func newItemBase(code, name string, scheduledAt time.Time, basePrice float64, capacity int) (itemBase, error) {
	var errs []error
	if strings.TrimSpace(code) == "" {
		errs = append(errs, invalid("code", "must be a non-empty string"))
	}
	if err := checkName(name); err != nil {
		errs = append(errs, err)
	}
	if err := checkScheduledAt(scheduledAt); err != nil {
		errs = append(errs, err)
	}
	if err := checkBasePrice(basePrice); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return itemBase{}, errors.Join(errs...)
	}

	return itemBase{
		code:        code,
		name:        name,
		scheduledAt: scheduledAt,
		basePrice:   basePrice,
		status:      ItemStatusAvailable,
		capacity:    capacity,
	}, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "must be a non-empty string")
	}
	return nil
}

func checkScheduledAt(at time.Time) error {
	if at.IsZero() {
		return invalid("scheduled_at", "must be set")
	}
	return nil
}

func checkBasePrice(price float64) error {
	if !validAmount(price) {
		return invalid("base_price", "cannot be negative")
	}
	return nil
}

func (b *itemBase) bookable() {}

func (b *itemBase) Code() string           { return b.code }
func (b *itemBase) Name() string           { return b.name }
func (b *itemBase) ScheduledAt() time.Time { return b.scheduledAt }
func (b *itemBase) BasePrice() float64     { return b.basePrice }
func (b *itemBase) Status() ItemStatus     { return b.status }
func (b *itemBase) Capacity() int          { return b.capacity }
func (b *itemBase) SoldCount() int         { return b.sold }

func (b *itemBase) SetName(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	b.name = name
	return nil
}

func (b *itemBase) SetScheduledAt(at time.Time) error {
	if err := checkScheduledAt(at); err != nil {
		return err
	}
	b.scheduledAt = at
	return nil
}

func (b *itemBase) SetBasePrice(price float64) error {
	if err := checkBasePrice(price); err != nil {
		return err
	}
	b.basePrice = price
	return nil
}

// SetStatus changes the status. SoldOut is tied to inventory: it can only be set
// on a full item, and a full item cannot be reopened as Available.
func (b *itemBase) SetStatus(status ItemStatus) error {
	if !status.Valid() {
		return invalid("status", fmt.Sprintf("must be one of %s, %s, %s, %s",
			ItemStatusAvailable, ItemStatusSoldOut, ItemStatusCancelled, ItemStatusInProgress))
	}
	if status == ItemStatusSoldOut && b.sold < b.capacity {
		return invalid("status", "sold_out requires every ticket to be sold")
	}
	if status == ItemStatusAvailable && b.sold == b.capacity {
		return invalid("status", "a full item cannot be available")
	}
	b.status = status
	return nil
}

func (b *itemBase) SetSoldCount(sold int) error {
	if sold < 0 || sold > b.capacity {
		return invalid("sold", fmt.Sprintf("must be between 0 and %d", b.capacity))
	}
	b.sold = sold
	switch {
	case sold == b.capacity && b.status == ItemStatusAvailable:
		b.status = ItemStatusSoldOut
	case sold < b.capacity && b.status == ItemStatusSoldOut:
		b.status = ItemStatusAvailable
	}
	return nil
}

// Sell takes quantity tickets out of the remaining capacity. It is all or nothing:
// a quantity below 1 or above what is left changes nothing and returns false.
func (b *itemBase) Sell(quantity int) bool {
	if quantity < 1 {
		return false
	}
	if b.sold+quantity > b.capacity {
		return false
	}

	b.sold += quantity
	if b.sold == b.capacity {
		b.status = ItemStatusSoldOut
	}
	return true
}

func (b *itemBase) String() string {
	return fmt.Sprintf("Item: %s | Code: %s | Date: %s | Status: %s",
		b.name, b.code, b.scheduledAt.Format(dateTimeLayout), b.status)
}

func (b *itemBase) view(kind ItemKind, unitPrice float64) ItemView {
	return ItemView{
		Kind:        kind,
		Code:        b.code,
		Name:        b.name,
		ScheduledAt: CustomTime{Time: b.scheduledAt},
		BasePrice:   b.basePrice,
		UnitPrice:   unitPrice,
		Status:      b.status,
		Capacity:    b.capacity,
		Sold:        b.sold,
	}
}
