package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiobook/models"
)

// ContactRepository resolves the lead behind a reservation or order.
// The booking path matches on email; the order path matches on email or
// phone number. A matched contact is updated in place, otherwise a new
// one is created.
type ContactRepository interface {
	UpsertByEmail(ctx context.Context, lead models.LeadInput) (*models.Contact, error)
	UpsertByEmailOrPhone(ctx context.Context, lead models.LeadInput) (*models.Contact, error)
}

type GormContactRepo struct {
	db *gorm.DB
}

func (r *GormContactRepo) UpsertByEmail(ctx context.Context, lead models.LeadInput) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).Where("email = ?", lead.Email).First(&contact).Error
	return r.finishUpsert(ctx, &contact, err, lead)
}

func (r *GormContactRepo) UpsertByEmailOrPhone(ctx context.Context, lead models.LeadInput) (*models.Contact, error) {
	q := r.db.WithContext(ctx)
	switch {
	case lead.Email != "" && lead.PhoneNumber != "":
		q = q.Where("email = ? OR phone_number = ?", lead.Email, lead.PhoneNumber)
	case lead.Email != "":
		q = q.Where("email = ?", lead.Email)
	default:
		q = q.Where("phone_number = ?", lead.PhoneNumber)
	}
	var contact models.Contact
	err := q.First(&contact).Error
	return r.finishUpsert(ctx, &contact, err, lead)
}

func (r *GormContactRepo) finishUpsert(ctx context.Context, contact *models.Contact, lookupErr error, lead models.LeadInput) (*models.Contact, error) {
	if lookupErr != nil && !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return nil, lookupErr
	}

	if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		contact = &models.Contact{
			ID:                uuid.New().String(),
			FullName:          lead.FullName,
			Email:             lead.Email,
			PhoneNumber:       lead.PhoneNumber,
			WhatsappNumber:    lead.WhatsappNumber,
			RecordingLocation: lead.RecordingLocation,
		}
		if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
			return nil, err
		}
		return contact, nil
	}

	contact.FullName = lead.FullName
	if lead.Email != "" {
		contact.Email = lead.Email
	}
	if lead.PhoneNumber != "" {
		contact.PhoneNumber = lead.PhoneNumber
	}
	if lead.WhatsappNumber != "" {
		contact.WhatsappNumber = lead.WhatsappNumber
	}
	if lead.RecordingLocation != "" {
		contact.RecordingLocation = lead.RecordingLocation
	}
	contact.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}
