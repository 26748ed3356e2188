package repository

import (
	"context"

	"gorm.io/gorm"
)

// RepoSet bundles the repositories that participate in the booking
// transaction. Inside RunInTx every repository returned by the set is
// bound to the same database transaction.
type RepoSet interface {
	Studios() StudioRepository
	Packages() PackageRepository
	Services() ServiceRepository
	Contacts() ContactRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
	Discounts() DiscountRepository
}

// TxManager runs a function inside a single database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx RepoSet) error) error
}

// GormStore implements RepoSet and TxManager on top of a *gorm.DB
// handle. It also exposes the payment-side repositories, which live
// outside the booking transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Studios() StudioRepository           { return &GormStudioRepo{db: s.db} }
func (s *GormStore) Packages() PackageRepository         { return &GormPackageRepo{db: s.db} }
func (s *GormStore) Services() ServiceRepository         { return &GormServiceRepo{db: s.db} }
func (s *GormStore) Contacts() ContactRepository         { return &GormContactRepo{db: s.db} }
func (s *GormStore) Reservations() ReservationRepository { return &GormReservationRepo{db: s.db} }
func (s *GormStore) Orders() OrderRepository             { return &GormOrderRepo{db: s.db} }
func (s *GormStore) Discounts() DiscountRepository       { return &GormDiscountRepo{db: s.db} }

func (s *GormStore) Payments() PaymentRepository           { return &GormPaymentRepo{db: s.db} }
func (s *GormStore) OrderPayments() OrderPaymentRepository { return &GormOrderPaymentRepo{db: s.db} }
func (s *GormStore) WebhookEvents() WebhookEventRepository { return &GormWebhookEventRepo{db: s.db} }

// RunInTx executes fn within one transaction. All writes are
// all-or-nothing; the caller bounds the duration through ctx.
func (s *GormStore) RunInTx(ctx context.Context, fn func(tx RepoSet) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
