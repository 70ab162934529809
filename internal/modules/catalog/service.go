package catalog

import (
	"context"
	"errors"
	"time"

	"campusbook/internal/domain"
	"campusbook/internal/repository"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation error")
)

// ResourceStore is the subset of the resource repository the catalog uses.
type ResourceStore interface {
	Create(ctx context.Context, r *domain.Resource) error
	Update(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	ListByKind(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error)
}

// SlotStore lists lab time slots.
type SlotStore interface {
	ListByResource(ctx context.Context, resourceID int64) ([]domain.TimeSlot, error)
}

// OverlapCounter reports active bookings per resource, used to derive the
// Available field.
type OverlapCounter interface {
	ActiveOverlapCounts(ctx context.Context, kind domain.ResourceKind, at time.Time) (map[int64]int64, error)
}

type Service struct {
	resources ResourceStore
	slots     SlotStore
	bookings  OverlapCounter
}

func NewService(resources ResourceStore, slots SlotStore, bookings OverlapCounter) *Service {
	return &Service{
		resources: resources,
		slots:     slots,
		bookings:  bookings,
	}
}

// ListResources returns the active resources of a kind with Available
// filled in: quantity minus active bookings overlapping now, floored at
// zero so available never exceeds quantity or goes negative.
func (s *Service) ListResources(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error) {
	resources, err := s.resources.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	counts, err := s.bookings.ActiveOverlapCounts(ctx, kind, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for i := range resources {
		avail := resources[i].Quantity - int(counts[resources[i].ID])
		if avail < 0 {
			avail = 0
		}
		resources[i].Available = avail
	}
	return resources, nil
}

func (s *Service) GetResource(ctx context.Context, kind domain.ResourceKind, id int64) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Kind != kind || !res.IsActive {
		return nil, ErrNotFound
	}

	counts, err := s.bookings.ActiveOverlapCounts(ctx, kind, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	avail := res.Quantity - int(counts[res.ID])
	if avail < 0 {
		avail = 0
	}
	res.Available = avail
	return res, nil
}

func (s *Service) ListSlots(ctx context.Context, labID int64) ([]domain.TimeSlot, error) {
	res, err := s.resources.GetByID(ctx, labID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Kind != domain.KindLab {
		return nil, ErrNotFound
	}
	return s.slots.ListByResource(ctx, labID)
}

func (s *Service) CreateResource(ctx context.Context, kind domain.ResourceKind, req CreateResourceRequest) (*domain.Resource, error) {
	res := &domain.Resource{
		Kind:             kind,
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Capacity:         req.Capacity,
		Quantity:         req.Quantity,
		RequiresApproval: req.RequiresApproval,
		IsActive:         true,
	}

	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	res.Available = res.Quantity
	return res, nil
}

func (s *Service) UpdateResource(ctx context.Context, kind domain.ResourceKind, id int64, req UpdateResourceRequest) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Kind != kind {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		res.Name = *req.Name
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Location != nil {
		res.Location = *req.Location
	}
	if req.Capacity != nil {
		res.Capacity = *req.Capacity
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrValidation
		}
		res.Quantity = *req.Quantity
	}
	if req.RequiresApproval != nil {
		res.RequiresApproval = *req.RequiresApproval
	}
	if req.IsActive != nil {
		res.IsActive = *req.IsActive
	}

	if err := s.resources.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}
