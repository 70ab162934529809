package domain

import "time"

type ResourceKind string

const (
	KindEquipment ResourceKind = "equipment"
	KindLab       ResourceKind = "lab"
	KindRoom      ResourceKind = "room"
)

func (k ResourceKind) Valid() bool {
	switch k {
	case KindEquipment, KindLab, KindRoom:
		return true
	}
	return false
}

// Resource is a bookable entity: a piece of equipment, a lab, or a room.
// Quantity is the total unit count (1 for labs and rooms); Available is
// derived from active bookings and never stored.
type Resource struct {
	ID               int64        `json:"id"`
	Kind             ResourceKind `json:"kind" validate:"required"`
	Name             string       `json:"name" validate:"required"`
	Description      string       `json:"description,omitempty"`
	Location         string       `json:"location" validate:"required"`
	Capacity         int          `json:"capacity,omitempty" validate:"gte=0"`
	Quantity         int          `json:"quantity" validate:"required,gt=0"`
	Available        int          `json:"available" gorm:"-"`
	RequiresApproval bool         `json:"requires_approval"`
	IsActive         bool         `json:"is_active"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// TimeSlot is a fixed bookable window for a lab, ordered by Position.
// Times are wall-clock strings in "15:04" form.
type TimeSlot struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resource_id"`
	Label      string `json:"label"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Position   int    `json:"position"`
}
