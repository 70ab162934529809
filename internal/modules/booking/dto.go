package booking

import "time"

// CreateBookingRequest is the POST body for /:kind/bookings.
// Rooms and equipment send combined start/end timestamps; labs send a date
// plus an optional time slot id (slot omitted means the lab's first slot).
type CreateBookingRequest struct {
	ResourceID int64      `json:"resource_id" binding:"required"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Date       string     `json:"date,omitempty"`
	TimeSlotID *int64     `json:"time_slot_id,omitempty"`
	Purpose    string     `json:"purpose"`
}

type BookingResponse struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingListItem struct {
	ID               int64     `json:"id"`
	Reference        string    `json:"reference"`
	ResourceID       int64     `json:"resource_id"`
	ResourceName     string    `json:"resource_name"`
	ResourceLocation string    `json:"resource_location"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Purpose          string    `json:"purpose"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected completed"`
}
