package notify

import (
	"context"
	"time"

	"campusbook/internal/domain"
)

// Event is the JSON payload pushed over the websocket.
type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	Reference  string    `json:"reference"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated = "booking.created"
	EventBookingDecided = "booking.decided"
)

// Service implements the booking module's Notifier over the hub. Delivery to
// offline users is silently skipped; the booking list is the durable record.
type Service struct {
	hub *Hub
}

func NewService(hub *Hub) *Service {
	return &Service{hub: hub}
}

func (s *Service) BookingCreated(ctx context.Context, b *domain.Booking) error {
	s.hub.SendToUser(b.UserID, event(EventBookingCreated, b))
	return nil
}

func (s *Service) BookingDecided(ctx context.Context, b *domain.Booking) error {
	s.hub.SendToUser(b.UserID, event(EventBookingDecided, b))
	return nil
}

func event(typ string, b *domain.Booking) Event {
	return Event{
		Type:       typ,
		BookingID:  b.ID,
		Reference:  b.Reference,
		Kind:       string(b.Kind),
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC(),
	}
}
