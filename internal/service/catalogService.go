package service

import (
	"context"
	"fmt"

	"github.com/ds124wfegd/boxoffice/internal/catalog"
	repository "github.com/ds124wfegd/boxoffice/internal/database/postgres"
	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/sirupsen/logrus"
)

type catalogService struct {
	manager *catalog.Manager
	cache   repository.CacheRepository
}

// NewCatalogService serves items and customers from manager. cache may be nil.
func NewCatalogService(manager *catalog.Manager, cache repository.CacheRepository) CatalogService {
	return &catalogService{
		manager: manager,
		cache:   cache,
	}
}

func (s *catalogService) CreateShowing(ctx context.Context, req *CreateShowingRequest) (*entity.ItemView, error) {
	showing, err := entity.NewCinemaShowing(entity.CinemaShowingParams{
		Code:        req.Code,
		Name:        req.Name,
		ScheduledAt: req.ScheduledAt.Time,
		BasePrice:   req.BasePrice,
		Film:        req.Film,
		Room:        req.Room,
		Is3D:        req.Is3D,
		IsVIP:       req.IsVIP,
	})
	if err != nil {
		return nil, err
	}

	return s.addItem(ctx, showing)
}

func (s *catalogService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.ItemView, error) {
	event, err := entity.NewSpecialEvent(entity.SpecialEventParams{
		Code:          req.Code,
		Name:          req.Name,
		ScheduledAt:   req.ScheduledAt.Time,
		BasePrice:     req.BasePrice,
		Performer:     req.Performer,
		EventType:     entity.EventType(req.EventType),
		DurationHours: req.DurationHours,
		Zone:          entity.Zone(req.Zone),
		MeetAndGreet:  req.MeetAndGreet,
	})
	if err != nil {
		return nil, err
	}

	return s.addItem(ctx, event)
}

func (s *catalogService) addItem(ctx context.Context, item entity.BookableItem) (*entity.ItemView, error) {
	// Snapshot before the item is shared with concurrent sales.
	view := item.View()

	if err := s.manager.AddItem(item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	s.invalidate(ctx)

	logrus.WithFields(logrus.Fields{
		"item_code": view.Code,
		"kind":      view.Kind,
	}).Info("Item added to catalog")
	return &view, nil
}

func (s *catalogService) GetItem(ctx context.Context, code string) (*entity.ItemView, error) {
	view, err := s.manager.ItemView(code)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *catalogService) ListItems(ctx context.Context) ([]entity.ItemView, error) {
	return s.manager.ItemViews(false), nil
}

func (s *catalogService) ListAvailable(ctx context.Context) ([]entity.ItemView, error) {
	return s.manager.ItemViews(true), nil
}

func (s *catalogService) UpdateItemStatus(ctx context.Context, code string, req *UpdateStatusRequest) (*entity.ItemView, error) {
	view, err := s.manager.UpdateItemStatus(code, entity.ItemStatus(req.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}
	s.invalidate(ctx)

	logrus.WithFields(logrus.Fields{
		"item_code": code,
		"status":    view.Status,
	}).Info("Item status updated")
	return &view, nil
}

func (s *catalogService) RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*entity.CustomerView, error) {
	customer, err := entity.NewCustomer(entity.CustomerParams{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}

	view := customer.View()
	if err := s.manager.AddCustomer(customer); err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	s.invalidate(ctx)

	logrus.WithField("customer_id", view.ID).Info("Customer registered")
	return &view, nil
}

func (s *catalogService) GetCustomer(ctx context.Context, id string) (*entity.CustomerView, error) {
	view, err := s.manager.CustomerView(id)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *catalogService) ListCustomers(ctx context.Context) ([]entity.CustomerView, error) {
	return s.manager.CustomerViews(), nil
}

func (s *catalogService) GetCustomerHistory(ctx context.Context, id string) ([]entity.Purchase, error) {
	return s.manager.CustomerHistory(id)
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate report cache")
	}
}
