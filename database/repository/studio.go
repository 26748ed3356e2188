package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiobook/models"
)

// StudioRepository provides read access to studios. GetByIDForUpdate
// takes a row lock so the conflict check-then-create sequence for one
// studio is serialized across concurrent booking transactions.
type StudioRepository interface {
	GetByID(ctx context.Context, id string) (*models.Studio, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Studio, error)
	ListActive(ctx context.Context) ([]models.Studio, error)
}

type GormStudioRepo struct {
	db *gorm.DB
}

func (r *GormStudioRepo) GetByID(ctx context.Context, id string) (*models.Studio, error) {
	var studio models.Studio
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&studio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *GormStudioRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Studio, error) {
	var studio models.Studio
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND active = ?", id, true).
		First(&studio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *GormStudioRepo) ListActive(ctx context.Context) ([]models.Studio, error) {
	var studios []models.Studio
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&studios).Error; err != nil {
		return nil, err
	}
	return studios, nil
}
