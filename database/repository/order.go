package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studiobook/models"
)

// OrderRepository persists service orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	CountByContactEmail(ctx context.Context, email string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type GormOrderRepo struct {
	db *gorm.DB
}

func (r *GormOrderRepo) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Contact").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepo) CountByContactEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Joins("JOIN contacts ON contacts.id = orders.contact_id").
		Where("contacts.email = ?", email).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
