package booking

import (
	"context"
	"time"

	"campusbook/internal/domain"
	"campusbook/internal/repository"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, kind domain.ResourceKind, userID int64) ([]repository.UserBookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ActiveOverlapCounts(ctx context.Context, kind domain.ResourceKind, at time.Time) (map[int64]int64, error)
}

// ResourceReader resolves the resource a request targets.
type ResourceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// SlotReader resolves lab time slots.
type SlotReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	FirstForResource(ctx context.Context, resourceID int64) (*domain.TimeSlot, error)
}

// Notifier pushes booking lifecycle events to the owning user. Delivery is
// best effort; failures never fail the operation that triggered them.
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingDecided(ctx context.Context, b *domain.Booking) error
}
