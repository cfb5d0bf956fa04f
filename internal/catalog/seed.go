package catalog

import (
	"fmt"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"
)

type seededShowing struct {
	params entity.CinemaShowingParams
	sold   int
}

type seededEvent struct {
	params entity.SpecialEventParams
	sold   int
}

func demoShowings() []seededShowing {
	return []seededShowing{
		{
			params: entity.CinemaShowingParams{
				Code:        "C001",
				Name:        "Premiere Screening",
				ScheduledAt: time.Date(2024, 12, 15, 20, 30, 0, 0, time.Local),
				BasePrice:   8.50,
				Film:        "Dune: Part Two",
				Room:        1,
			},
			sold: 45,
		},
		{
			params: entity.CinemaShowingParams{
				Code:        "C002",
				Name:        "3D VIP Screening",
				ScheduledAt: time.Date(2024, 12, 15, 21, 0, 0, 0, time.Local),
				BasePrice:   8.50,
				Film:        "Avatar 3",
				Room:        5,
				Is3D:        true,
				IsVIP:       true,
			},
			sold: 60,
		},
		{
			params: entity.CinemaShowingParams{
				Code:        "C003",
				Name:        "Kids Matinee",
				ScheduledAt: time.Date(2024, 12, 16, 11, 0, 0, 0, time.Local),
				BasePrice:   8.50,
				Film:        "Moana 2",
				Room:        3,
				Is3D:        true,
			},
			sold: 80,
		},
	}
}

func demoEvents() []seededEvent {
	return []seededEvent{
		{
			params: entity.SpecialEventParams{
				Code:          "E001",
				Name:          "Rock Night",
				ScheduledAt:   time.Date(2024, 12, 20, 20, 0, 0, 0, time.Local),
				BasePrice:     45.00,
				Performer:     "Los Rockeros",
				EventType:     entity.EventTypeConcert,
				DurationHours: 2.5,
				Zone:          entity.ZoneGeneral,
			},
			sold: 250,
		},
		{
			params: entity.SpecialEventParams{
				Code:          "E002",
				Name:          "Classic Opera",
				ScheduledAt:   time.Date(2024, 12, 22, 19, 30, 0, 0, time.Local),
				BasePrice:     65.00,
				Performer:     "Compañía Nacional de Opera",
				EventType:     entity.EventTypeOpera,
				DurationHours: 3.5,
				Zone:          entity.ZoneVIP,
				MeetAndGreet:  true,
			},
			sold: 180,
		},
		{
			params: entity.SpecialEventParams{
				Code:          "E003",
				Name:          "Stand-up Night",
				ScheduledAt:   time.Date(2024, 12, 25, 21, 0, 0, 0, time.Local),
				BasePrice:     30.00,
				Performer:     "Comediantes Unidos",
				EventType:     entity.EventTypeStandUp,
				DurationHours: 2.0,
				Zone:          entity.ZonePreferential,
			},
			sold: 320,
		},
	}
}

func demoCustomers() []entity.CustomerParams {
	return []entity.CustomerParams{
		{ID: "0912345678", FirstName: "Juan Carlos", LastName: "Pérez López", Email: "juan.perez@email.com", Phone: "0987654321"},
		{ID: "0923456789", FirstName: "María Fernanda", LastName: "González Ruiz", Email: "maria.gonzalez@email.com", Phone: "0976543210"},
		{ID: "0934567890", FirstName: "Carlos Andrés", LastName: "Martínez Silva", Email: "carlos.martinez@email.com", Phone: "0965432109"},
		{ID: "0945678901", FirstName: "Ana Lucía", LastName: "Torres Vega", Email: "ana.torres@email.com", Phone: "0954321098"},
	}
}

// SeedDemo fills the manager with three showings, three events and four customers.
// Items come with tickets already sold; those sales bypass the ledger and do not
// count towards the manager's running revenue.
func SeedDemo(m *Manager) error {
	for _, s := range demoShowings() {
		showing, err := entity.NewCinemaShowing(s.params)
		if err != nil {
			return fmt.Errorf("seed showing %s: %w", s.params.Code, err)
		}
		if err := seedItem(m, showing, s.sold); err != nil {
			return err
		}
	}

	for _, e := range demoEvents() {
		event, err := entity.NewSpecialEvent(e.params)
		if err != nil {
			return fmt.Errorf("seed event %s: %w", e.params.Code, err)
		}
		if err := seedItem(m, event, e.sold); err != nil {
			return err
		}
	}

	for _, p := range demoCustomers() {
		customer, err := entity.NewCustomer(p)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", p.ID, err)
		}
		if err := m.AddCustomer(customer); err != nil {
			return fmt.Errorf("seed customer %s: %w", p.ID, err)
		}
	}
	return nil
}

func seedItem(m *Manager, item entity.BookableItem, sold int) error {
	if !item.Sell(sold) {
		return fmt.Errorf("seed item %s: cannot pre-sell %d tickets", item.Code(), sold)
	}
	if err := m.AddItem(item); err != nil {
		return fmt.Errorf("seed item %s: %w", item.Code(), err)
	}
	return nil
}
