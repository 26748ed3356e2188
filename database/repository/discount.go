package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studiobook/models"
)

// DiscountRepository looks up discount codes and consumes usage slots.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	// ConsumeUsage increments the used counter by one, but only while
	// the counter is below the usage limit. Returns false when the
	// limit is already exhausted.
	ConsumeUsage(ctx context.Context, id string) (bool, error)
}

type GormDiscountRepo struct {
	db *gorm.DB
}

func (r *GormDiscountRepo) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *GormDiscountRepo) ConsumeUsage(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ?", id).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
