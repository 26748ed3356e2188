package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studiobook/models"
)

// ReservationRepository persists studio reservations and answers the
// reads the availability and discount checks depend on.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// OverlappingForStudio returns non-cancelled reservations on the
	// studio whose [start, end) window intersects the given one.
	OverlappingForStudio(ctx context.Context, studioID string, start, end time.Time) ([]models.Reservation, error)
	// ActiveForStudioBetween lists non-cancelled reservations inside a
	// day window, for rendering free slots.
	ActiveForStudioBetween(ctx context.Context, studioID string, from, to time.Time) ([]models.Reservation, error)
	CountByContactEmail(ctx context.Context, email string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
}

type GormReservationRepo struct {
	db *gorm.DB
}

func (r *GormReservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Preload("Items").Preload("Contact").Where("id = ?", id).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepo) OverlappingForStudio(ctx context.Context, studioID string, start, end time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND status <> ?", studioID, models.ReservationCancelled).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepo) ActiveForStudioBetween(ctx context.Context, studioID string, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND status <> ?", studioID, models.ReservationCancelled).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepo) CountByContactEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Joins("JOIN contacts ON contacts.id = reservations.contact_id").
		Where("contacts.email = ?", email).
		Count(&count).Error
	return count, err
}

func (r *GormReservationRepo) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
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
