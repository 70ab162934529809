package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"campusbook/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

type resourceModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Kind             string    `gorm:"column:kind;index"`
	Name             string    `gorm:"column:name"`
	Description      *string   `gorm:"column:description"`
	Location         string    `gorm:"column:location"`
	Capacity         int       `gorm:"column:capacity"`
	Quantity         int       `gorm:"column:quantity"`
	RequiresApproval bool      `gorm:"column:requires_approval"`
	IsActive         bool      `gorm:"column:is_active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (resourceModel) TableName() string { return "resources" }

func toDomainResource(m resourceModel) *domain.Resource {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Resource{
		ID:               m.ID,
		Kind:             domain.ResourceKind(m.Kind),
		Name:             m.Name,
		Description:      desc,
		Location:         m.Location,
		Capacity:         m.Capacity,
		Quantity:         m.Quantity,
		RequiresApproval: m.RequiresApproval,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toResourceModel(r *domain.Resource) resourceModel {
	var desc *string
	if r.Description != "" {
		v := r.Description
		desc = &v
	}

	return resourceModel{
		ID:               r.ID,
		Kind:             string(r.Kind),
		Name:             r.Name,
		Description:      desc,
		Location:         r.Location,
		Capacity:         r.Capacity,
		Quantity:         r.Quantity,
		RequiresApproval: r.RequiresApproval,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	m := toResourceModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainResource(m)
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	m := toResourceModel(res)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainResource(m)
	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var m resourceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainResource(m), nil
}

func (r *ResourceRepository) ListByKind(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error) {
	var models []resourceModel
	tx := r.db.WithContext(ctx).
		Where("kind = ? AND is_active = ?", string(kind), true).
		Order("name ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Resource, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainResource(m))
	}
	return out, nil
}
