package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"campusbook/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Reference  string    `gorm:"column:reference;uniqueIndex:idx_bookings_reference"`
	ResourceID int64     `gorm:"column:resource_id;index"`
	Kind       string    `gorm:"column:kind;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	TimeSlotID *int64    `gorm:"column:time_slot_id"`
	Purpose    *string   `gorm:"column:purpose"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var purpose string
	if m.Purpose != nil {
		purpose = *m.Purpose
	}

	return &domain.Booking{
		ID:         m.ID,
		Reference:  m.Reference,
		ResourceID: m.ResourceID,
		Kind:       domain.ResourceKind(m.Kind),
		UserID:     m.UserID,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		TimeSlotID: m.TimeSlotID,
		Purpose:    purpose,
		Status:     domain.BookingStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var purpose *string
	if b.Purpose != "" {
		v := b.Purpose
		purpose = &v
	}

	return bookingModel{
		ID:         b.ID,
		Reference:  b.Reference,
		ResourceID: b.ResourceID,
		Kind:       string(b.Kind),
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TimeSlotID: b.TimeSlotID,
		Purpose:    purpose,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// UserBookingDetails is a booking row joined with its resource for listing.
type UserBookingDetails struct {
	ID               int64     `gorm:"column:id"`
	Reference        string    `gorm:"column:reference"`
	ResourceID       int64     `gorm:"column:resource_id"`
	ResourceName     string    `gorm:"column:resource_name"`
	ResourceLocation string    `gorm:"column:resource_location"`
	StartTime        time.Time `gorm:"column:start_time"`
	EndTime          time.Time `gorm:"column:end_time"`
	Purpose          string    `gorm:"column:purpose"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, kind domain.ResourceKind, userID int64) ([]UserBookingDetails, error) {
	var rows []UserBookingDetails
	q := `
SELECT b.id,
       b.reference,
       b.resource_id,
       r.name     AS resource_name,
       r.location AS resource_location,
       b.start_time,
       b.end_time,
       COALESCE(b.purpose, '') AS purpose,
       b.status,
       b.created_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id
WHERE b.kind = ? AND b.user_id = ?
ORDER BY b.created_at DESC
`
	tx := r.db.WithContext(ctx).Raw(q, string(kind), userID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveOverlapCounts returns, per resource of the given kind, how many
// pending or approved bookings overlap the instant at. Resources with no
// active booking are absent from the map.
func (r *BookingRepository) ActiveOverlapCounts(ctx context.Context, kind domain.ResourceKind, at time.Time) (map[int64]int64, error) {
	type row struct {
		ResourceID int64 `gorm:"column:resource_id"`
		Cnt        int64 `gorm:"column:cnt"`
	}

	var rows []row
	q := `
SELECT resource_id, COUNT(1) AS cnt
FROM bookings
WHERE kind = ?
  AND status IN ('pending', 'approved')
  AND start_time <= ? AND end_time > ?
GROUP BY resource_id
`
	tx := r.db.WithContext(ctx).Raw(q, string(kind), at, at).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]int64, len(rows))
	for _, rr := range rows {
		out[rr.ResourceID] = rr.Cnt
	}
	return out, nil
}
