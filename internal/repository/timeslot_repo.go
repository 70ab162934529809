package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campusbook/internal/domain"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

type timeSlotModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	ResourceID int64  `gorm:"column:resource_id;index"`
	Label      string `gorm:"column:label"`
	StartTime  string `gorm:"column:start_time"`
	EndTime    string `gorm:"column:end_time"`
	Position   int    `gorm:"column:position"`
}

func (timeSlotModel) TableName() string { return "time_slots" }

func toDomainTimeSlot(m timeSlotModel) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:         m.ID,
		ResourceID: m.ResourceID,
		Label:      m.Label,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Position:   m.Position,
	}
}

func (r *TimeSlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	m := timeSlotModel{
		ResourceID: s.ResourceID,
		Label:      s.Label,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Position:   s.Position,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainTimeSlot(m), nil
}

func (r *TimeSlotRepository) ListByResource(ctx context.Context, resourceID int64) ([]domain.TimeSlot, error) {
	var models []timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("position ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTimeSlot(m))
	}
	return out, nil
}

// FirstForResource returns the lowest-position slot for a lab, used when a
// booking request names no slot.
func (r *TimeSlotRepository) FirstForResource(ctx context.Context, resourceID int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("position ASC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainTimeSlot(m), nil
}
