package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studiobook/database/repository"
	"studiobook/models"
)

// fakeStore is an in-memory RepoSet + TxManager for orchestrator tests.
type fakeStore struct {
	studios      map[string]*models.Studio
	packages     map[string]*models.StudioPackage
	services     map[string]*models.Service
	discounts    map[string]*models.DiscountCode
	contacts     map[string]*models.Contact
	reservations []*models.Reservation
	orders       []*models.Order
	priorByEmail map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		studios:      map[string]*models.Studio{},
		packages:     map[string]*models.StudioPackage{},
		services:     map[string]*models.Service{},
		discounts:    map[string]*models.DiscountCode{},
		contacts:     map[string]*models.Contact{},
		priorByEmail: map[string]int64{},
	}
}

func (s *fakeStore) RunInTx(_ context.Context, fn func(tx repository.RepoSet) error) error {
	return fn(s)
}

func (s *fakeStore) Studios() repository.StudioRepository           { return fakeStudioRepo{s} }
func (s *fakeStore) Packages() repository.PackageRepository         { return fakePackageRepo{s} }
func (s *fakeStore) Services() repository.ServiceRepository         { return fakeServiceRepo{s} }
func (s *fakeStore) Contacts() repository.ContactRepository         { return fakeContactRepo{s} }
func (s *fakeStore) Reservations() repository.ReservationRepository { return fakeReservationRepo{s} }
func (s *fakeStore) Orders() repository.OrderRepository             { return fakeOrderRepo{s} }
func (s *fakeStore) Discounts() repository.DiscountRepository       { return fakeDiscountRepo{s} }

type fakeStudioRepo struct{ s *fakeStore }

func (r fakeStudioRepo) GetByID(_ context.Context, id string) (*models.Studio, error) {
	if studio, ok := r.s.studios[id]; ok && studio.Active {
		return studio, nil
	}
	return nil, repository.ErrNotFound
}

func (r fakeStudioRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Studio, error) {
	return r.GetByID(ctx, id)
}

func (r fakeStudioRepo) ListActive(context.Context) ([]models.Studio, error) {
	var out []models.Studio
	for _, studio := range r.s.studios {
		if studio.Active {
			out = append(out, *studio)
		}
	}
	return out, nil
}

type fakePackageRepo struct{ s *fakeStore }

func (r fakePackageRepo) GetActiveByID(_ context.Context, id string) (*models.StudioPackage, error) {
	if pkg, ok := r.s.packages[id]; ok && pkg.Active {
		return pkg, nil
	}
	return nil, repository.ErrNotFound
}

type fakeServiceRepo struct{ s *fakeStore }

func (r fakeServiceRepo) GetActiveByID(_ context.Context, id string) (*models.Service, error) {
	if svc, ok := r.s.services[id]; ok && svc.Active {
		return svc, nil
	}
	return nil, repository.ErrNotFound
}

type fakeContactRepo struct{ s *fakeStore }

func (r fakeContactRepo) UpsertByEmail(_ context.Context, lead models.LeadInput) (*models.Contact, error) {
	if contact, ok := r.s.contacts[lead.Email]; ok {
		contact.FullName = lead.FullName
		return contact, nil
	}
	contact := &models.Contact{
		ID:          uuid.New().String(),
		FullName:    lead.FullName,
		Email:       lead.Email,
		PhoneNumber: lead.PhoneNumber,
	}
	r.s.contacts[lead.Email] = contact
	return contact, nil
}

func (r fakeContactRepo) UpsertByEmailOrPhone(ctx context.Context, lead models.LeadInput) (*models.Contact, error) {
	for _, contact := range r.s.contacts {
		if (lead.Email != "" && contact.Email == lead.Email) ||
			(lead.PhoneNumber != "" && contact.PhoneNumber == lead.PhoneNumber) {
			contact.FullName = lead.FullName
			return contact, nil
		}
	}
	return r.UpsertByEmail(ctx, lead)
}

type fakeReservationRepo struct{ s *fakeStore }

func (r fakeReservationRepo) Create(_ context.Context, reservation *models.Reservation) error {
	r.s.reservations = append(r.s.reservations, reservation)
	return nil
}

func (r fakeReservationRepo) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	for _, res := range r.s.reservations {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeReservationRepo) OverlappingForStudio(_ context.Context, studioID string, start, end time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.s.reservations {
		if res.StudioID == studioID && res.Status != models.ReservationCancelled &&
			Overlaps(start, end, res.StartTime, res.EndTime) {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r fakeReservationRepo) ActiveForStudioBetween(ctx context.Context, studioID string, from, to time.Time) ([]models.Reservation, error) {
	return r.OverlappingForStudio(ctx, studioID, from, to)
}

func (r fakeReservationRepo) CountByContactEmail(_ context.Context, email string) (int64, error) {
	count := r.s.priorByEmail[email]
	for _, res := range r.s.reservations {
		if contact, ok := r.s.contacts[email]; ok && res.ContactID == contact.ID {
			count++
		}
	}
	return count, nil
}

func (r fakeReservationRepo) UpdateStatus(_ context.Context, id string, status models.ReservationStatus) error {
	for _, res := range r.s.reservations {
		if res.ID == id {
			res.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeOrderRepo struct{ s *fakeStore }

func (r fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.s.orders = append(r.s.orders, order)
	return nil
}

func (r fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	for _, order := range r.s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeOrderRepo) CountByContactEmail(_ context.Context, email string) (int64, error) {
	var count int64
	for _, order := range r.s.orders {
		if contact, ok := r.s.contacts[email]; ok && order.ContactID == contact.ID {
			count++
		}
	}
	return count, nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	for _, order := range r.s.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeDiscountRepo struct{ s *fakeStore }

func (r fakeDiscountRepo) GetByCode(_ context.Context, code string) (*models.DiscountCode, error) {
	if discount, ok := r.s.discounts[code]; ok {
		return discount, nil
	}
	return nil, repository.ErrNotFound
}

func (r fakeDiscountRepo) ConsumeUsage(_ context.Context, id string) (bool, error) {
	for _, discount := range r.s.discounts {
		if discount.ID == id {
			if discount.UsageLimit != nil && discount.UsedCount >= *discount.UsageLimit {
				return false, nil
			}
			discount.UsedCount++
			return true, nil
		}
	}
	return false, nil
}

// fakeLinker stands in for the payment gateway after commit.
type fakeLinker struct {
	url  string
	err  error
	call int
}

func (l *fakeLinker) EnsureReservationLink(context.Context, *models.Reservation, *models.Contact) (LinkResult, error) {
	l.call++
	return LinkResult{URL: l.url}, l.err
}

func (l *fakeLinker) EnsureOrderLink(context.Context, *models.Order, *models.Contact) (LinkResult, error) {
	l.call++
	return LinkResult{URL: l.url}, l.err
}
