package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiobook/models"
)

// WebhookEventRepository is the processed-event ledger. Replayed
// provider deliveries are detected here and acknowledged without
// re-applying state transitions.
type WebhookEventRepository interface {
	// MarkProcessed records the event key. Returns true when the key
	// was already present, i.e. the delivery is a replay.
	MarkProcessed(ctx context.Context, eventKey, eventType string) (bool, error)
	// Remove releases a claimed event key after a failed apply, so the
	// provider's retry is not treated as a replay.
	Remove(ctx context.Context, eventKey string) error
}

type GormWebhookEventRepo struct {
	db *gorm.DB
}

func (r *GormWebhookEventRepo) MarkProcessed(ctx context.Context, eventKey, eventType string) (bool, error) {
	event := models.WebhookEvent{
		EventKey:    eventKey,
		EventType:   eventType,
		ProcessedAt: time.Now().UTC(),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}

func (r *GormWebhookEventRepo) Remove(ctx context.Context, eventKey string) error {
	return r.db.WithContext(ctx).Delete(&models.WebhookEvent{EventKey: eventKey}).Error
}
