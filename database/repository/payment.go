package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studiobook/models"
)

// PaymentRepository persists payment-link records for reservations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	// ActiveByReservation returns the reservation's non-FAILED payment,
	// or ErrNotFound when only failed payments (or none) exist.
	ActiveByReservation(ctx context.Context, reservationID string) (*models.Payment, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Payment, error)
	Save(ctx context.Context, payment *models.Payment) error
}

// OrderPaymentRepository mirrors PaymentRepository for orders.
type OrderPaymentRepository interface {
	Create(ctx context.Context, payment *models.OrderPayment) error
	ActiveByOrder(ctx context.Context, orderID string) (*models.OrderPayment, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.OrderPayment, error)
	Save(ctx context.Context, payment *models.OrderPayment) error
}

type GormPaymentRepo struct {
	db *gorm.DB
}

func (r *GormPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *GormPaymentRepo) ActiveByReservation(ctx context.Context, reservationID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("reservation_id = ? AND status <> ?", reservationID, models.PaymentFailed).
		Order("created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepo) GetByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepo) Save(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

type GormOrderPaymentRepo struct {
	db *gorm.DB
}

func (r *GormOrderPaymentRepo) Create(ctx context.Context, payment *models.OrderPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *GormOrderPaymentRepo) ActiveByOrder(ctx context.Context, orderID string) (*models.OrderPayment, error) {
	var payment models.OrderPayment
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status <> ?", orderID, models.PaymentFailed).
		Order("created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormOrderPaymentRepo) GetByExternalID(ctx context.Context, externalID string) (*models.OrderPayment, error) {
	var payment models.OrderPayment
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormOrderPaymentRepo) Save(ctx context.Context, payment *models.OrderPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}
