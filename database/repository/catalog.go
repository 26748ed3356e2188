package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studiobook/models"
)

// PackageRepository resolves the studio package being booked.
type PackageRepository interface {
	GetActiveByID(ctx context.Context, id string) (*models.StudioPackage, error)
}

// ServiceRepository resolves production services: add-on line items on
// bookings and the single service of an order.
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, id string) (*models.Service, error)
}

type GormPackageRepo struct {
	db *gorm.DB
}

func (r *GormPackageRepo) GetActiveByID(ctx context.Context, id string) (*models.StudioPackage, error) {
	var pkg models.StudioPackage
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

type GormServiceRepo struct {
	db *gorm.DB
}

func (r *GormServiceRepo) GetActiveByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}
