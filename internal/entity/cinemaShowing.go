package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ShowingCapacity   = 100
	Surcharge3D       = 3.50
	SurchargeVIPRoom  = 5.00
	MatineeDiscount   = 0.30
	MatineeCutoffHour = 14
)

type ShowingDetails struct {
	Film  string `json:"film"`
	Room  int    `json:"room"`
	Is3D  bool   `json:"is_3d"`
	IsVIP bool   `json:"is_vip"`
}

type CinemaShowingParams struct {
	Code        string
	Name        string
	ScheduledAt time.Time
	BasePrice   float64
	Film        string
	Room        int
	Is3D        bool
	IsVIP       bool
}

// CinemaShowing is a film screening in one room with a fixed capacity of 100 seats.
type CinemaShowing struct {
	itemBase
	film  string
	room  int
	is3D  bool
	isVIP bool
}

func NewCinemaShowing(p CinemaShowingParams) (*CinemaShowing, error) {
	base, err := newItemBase(p.Code, p.Name, p.ScheduledAt, p.BasePrice, ShowingCapacity)

	errs := []error{err}
	if err := checkFilm(p.Film); err != nil {
		errs = append(errs, err)
	}
	if err := checkRoom(p.Room); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &CinemaShowing{
		itemBase: base,
		film:     p.Film,
		room:     p.Room,
		is3D:     p.Is3D,
		isVIP:    p.IsVIP,
	}, nil
}

func checkFilm(film string) error {
	if strings.TrimSpace(film) == "" {
		return invalid("film", "must be a non-empty string")
	}
	return nil
}

func checkRoom(room int) error {
	if room < 1 {
		return invalid("room", "must be a positive number")
	}
	return nil
}

func (s *CinemaShowing) Kind() ItemKind { return KindShowing }
func (s *CinemaShowing) Film() string   { return s.film }
func (s *CinemaShowing) Room() int      { return s.room }
func (s *CinemaShowing) Is3D() bool     { return s.is3D }
func (s *CinemaShowing) IsVIP() bool    { return s.isVIP }

func (s *CinemaShowing) SetFilm(film string) error {
	if err := checkFilm(film); err != nil {
		return err
	}
	s.film = film
	return nil
}

func (s *CinemaShowing) SetRoom(room int) error {
	if err := checkRoom(room); err != nil {
		return err
	}
	s.room = room
	return nil
}

func (s *CinemaShowing) Set3D(is3D bool)   { s.is3D = is3D }
func (s *CinemaShowing) SetVIP(isVIP bool) { s.isVIP = isVIP }

// IsMatinee reports whether the showing starts before 14:00 on its own clock.
func (s *CinemaShowing) IsMatinee() bool {
	return s.scheduledAt.Hour() < MatineeCutoffHour
}

// UnitPrice adds the 3D and VIP surcharges first, then applies the matinee discount.
func (s *CinemaShowing) UnitPrice() float64 {
	price := s.basePrice
	if s.is3D {
		price += Surcharge3D
	}
	if s.isVIP {
		price += SurchargeVIPRoom
	}
	if s.IsMatinee() {
		price *= 1 - MatineeDiscount
	}
	return RoundMoney(price)
}

func (s *CinemaShowing) Describe() string {
	format := "2D"
	if s.is3D {
		format = "3D"
	}
	kind := "Regular"
	if s.isVIP {
		kind = "VIP"
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("CINEMA SHOWING\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Film: %s\n", s.film)
	fmt.Fprintf(&b, "Name: %s\n", s.name)
	fmt.Fprintf(&b, "Code: %s\n", s.code)
	fmt.Fprintf(&b, "Room: %d\n", s.room)
	fmt.Fprintf(&b, "Date: %s\n", s.scheduledAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time: %s\n", s.scheduledAt.Format("15:04"))
	fmt.Fprintf(&b, "Format: %s\n", format)
	fmt.Fprintf(&b, "Type: %s\n", kind)
	fmt.Fprintf(&b, "Base price: $%.2f\n", s.basePrice)
	fmt.Fprintf(&b, "Unit price: $%.2f\n", s.UnitPrice())
	fmt.Fprintf(&b, "Seats sold: %d/%d\n", s.sold, s.capacity)
	fmt.Fprintf(&b, "Status: %s\n", s.status)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	return b.String()
}

func (s *CinemaShowing) View() ItemView {
	v := s.view(KindShowing, s.UnitPrice())
	v.Showing = &ShowingDetails{
		Film:  s.film,
		Room:  s.room,
		Is3D:  s.is3D,
		IsVIP: s.isVIP,
	}
	return v
}
