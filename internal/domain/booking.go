package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
)

// Active reports whether the booking still holds (or may hold) the resource.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingApproved
}

// Booking is the server's authoritative record of a submitted request.
// Status is only ever assigned server-side: pending when the resource
// requires approval, approved otherwise, then moved by an admin.
type Booking struct {
	ID         int64         `json:"id"`
	Reference  string        `json:"reference"`
	ResourceID int64         `json:"resource_id" validate:"required"`
	Kind       ResourceKind  `json:"kind"`
	UserID     int64         `json:"user_id" validate:"required"`
	StartTime  time.Time     `json:"start_time" validate:"required"`
	EndTime    time.Time     `json:"end_time" validate:"required"`
	TimeSlotID *int64        `json:"time_slot_id,omitempty"`
	Purpose    string        `json:"purpose"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Resource *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}
