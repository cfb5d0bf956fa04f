package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

type EventType string

const (
	EventTypeConcert     EventType = "Concert"
	EventTypeTheaterPlay EventType = "Theater Play"
	EventTypeStandUp     EventType = "Stand-up Comedy"
	EventTypeOpera       EventType = "Opera"
	EventTypeBallet      EventType = "Ballet"
)

var EventTypes = []EventType{EventTypeConcert, EventTypeTheaterPlay, EventTypeStandUp, EventTypeOpera, EventTypeBallet}

func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Zone string

const (
	ZoneGeneral      Zone = "General"
	ZonePreferential Zone = "Preferential"
	ZoneVIP          Zone = "VIP"
)

func (z Zone) Valid() bool {
	return z == ZoneGeneral || z == ZonePreferential || z == ZoneVIP
}

// Surcharge is the flat amount the zone adds to every ticket.
func (z Zone) Surcharge() float64 {
	switch z {
	case ZoneVIP:
		return 25.00
	case ZonePreferential:
		return 15.00
	}
	return 0
}

const (
	EventCapacity          = 500
	MeetAndGreetSurcharge  = 50.00
	LongEventThresholdHour = 3.0
	LongEventMultiplier    = 1.10
)

type EventDetails struct {
	Performer        string    `json:"performer"`
	EventType        EventType `json:"event_type"`
	DurationHours    float64   `json:"duration_hours"`
	Zone             Zone      `json:"zone"`
	MeetAndGreet     bool      `json:"meet_and_greet"`
	OccupancyPercent float64   `json:"occupancy_percent"`
}

type SpecialEventParams struct {
	Code          string
	Name          string
	ScheduledAt   time.Time
	BasePrice     float64
	Performer     string
	EventType     EventType
	DurationHours float64
	Zone          Zone // General when empty
	MeetAndGreet  bool
}

// SpecialEvent is a live performance with 500 tickets.
type SpecialEvent struct {
	itemBase
	performer     string
	eventType     EventType
	durationHours float64
	zone          Zone
	meetAndGreet  bool
}

func NewSpecialEvent(p SpecialEventParams) (*SpecialEvent, error) {
	if p.Zone == "" {
		p.Zone = ZoneGeneral
	}

	base, err := newItemBase(p.Code, p.Name, p.ScheduledAt, p.BasePrice, EventCapacity)

	errs := []error{err}
	if err := checkPerformer(p.Performer); err != nil {
		errs = append(errs, err)
	}
	if err := checkEventType(p.EventType); err != nil {
		errs = append(errs, err)
	}
	if err := checkDuration(p.DurationHours); err != nil {
		errs = append(errs, err)
	}
	if err := checkZone(p.Zone); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &SpecialEvent{
		itemBase:      base,
		performer:     p.Performer,
		eventType:     p.EventType,
		durationHours: p.DurationHours,
		zone:          p.Zone,
		meetAndGreet:  p.MeetAndGreet,
	}, nil
}

func checkPerformer(performer string) error {
	if strings.TrimSpace(performer) == "" {
		return invalid("performer", "must be a non-empty string")
	}
	return nil
}

func checkEventType(t EventType) error {
	if !t.Valid() {
		return invalid("event_type", fmt.Sprintf("must be one of %v", EventTypes))
	}
	return nil
}

func checkDuration(hours float64) error {
	if !(hours > 0) || math.IsInf(hours, 0) {
		return invalid("duration_hours", "must be positive")
	}
	return nil
}

func checkZone(z Zone) error {
	if !z.Valid() {
		return invalid("zone", fmt.Sprintf("must be one of %s, %s, %s", ZoneGeneral, ZonePreferential, ZoneVIP))
	}
	return nil
}

func (e *SpecialEvent) Kind() ItemKind         { return KindEvent }
func (e *SpecialEvent) Performer() string      { return e.performer }
func (e *SpecialEvent) EventType() EventType   { return e.eventType }
func (e *SpecialEvent) DurationHours() float64 { return e.durationHours }
func (e *SpecialEvent) Zone() Zone             { return e.zone }
func (e *SpecialEvent) MeetAndGreet() bool     { return e.meetAndGreet }

func (e *SpecialEvent) SetPerformer(performer string) error {
	if err := checkPerformer(performer); err != nil {
		return err
	}
	e.performer = performer
	return nil
}

func (e *SpecialEvent) SetEventType(t EventType) error {
	if err := checkEventType(t); err != nil {
		return err
	}
	e.eventType = t
	return nil
}

func (e *SpecialEvent) SetDurationHours(hours float64) error {
	if err := checkDuration(hours); err != nil {
		return err
	}
	e.durationHours = hours
	return nil
}

func (e *SpecialEvent) SetZone(z Zone) error {
	if err := checkZone(z); err != nil {
		return err
	}
	e.zone = z
	return nil
}

func (e *SpecialEvent) SetMeetAndGreet(included bool) { e.meetAndGreet = included }

// UnitPrice adds the zone and meet-and-greet surcharges, then the 10% long-event surcharge
// for anything over three hours.
func (e *SpecialEvent) UnitPrice() float64 {
	price := e.basePrice + e.zone.Surcharge()
	if e.meetAndGreet {
		price += MeetAndGreetSurcharge
	}
	if e.durationHours > LongEventThresholdHour {
		price *= LongEventMultiplier
	}
	return RoundMoney(price)
}

// OccupancyPercent is sold/capacity*100, rounded to two decimals.
func (e *SpecialEvent) OccupancyPercent() float64 {
	return RoundMoney(float64(e.sold) / float64(e.capacity) * 100)
}

func (e *SpecialEvent) Describe() string {
	greet := "No"
	if e.meetAndGreet {
		greet = "Yes"
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("SPECIAL EVENT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Name: %s\n", e.name)
	fmt.Fprintf(&b, "Code: %s\n", e.code)
	fmt.Fprintf(&b, "Type: %s\n", e.eventType)
	fmt.Fprintf(&b, "Performer: %s\n", e.performer)
	fmt.Fprintf(&b, "Date: %s\n", e.scheduledAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time: %s\n", e.scheduledAt.Format("15:04"))
	fmt.Fprintf(&b, "Duration: %g hours\n", e.durationHours)
	fmt.Fprintf(&b, "Zone: %s\n", e.zone)
	fmt.Fprintf(&b, "Base price: $%.2f\n", e.basePrice)
	fmt.Fprintf(&b, "Unit price: $%.2f\n", e.UnitPrice())
	fmt.Fprintf(&b, "Meet & Greet: %s\n", greet)
	fmt.Fprintf(&b, "Tickets sold: %d/%d (%.2f%%)\n", e.sold, e.capacity, e.OccupancyPercent())
	fmt.Fprintf(&b, "Status: %s\n", e.status)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	return b.String()
}

func (e *SpecialEvent) View() ItemView {
	v := e.view(KindEvent, e.UnitPrice())
	v.Event = &EventDetails{
		Performer:        e.performer,
		EventType:        e.eventType,
		DurationHours:    e.durationHours,
		Zone:             e.zone,
		MeetAndGreet:     e.meetAndGreet,
		OccupancyPercent: e.OccupancyPercent(),
	}
	return v
}
