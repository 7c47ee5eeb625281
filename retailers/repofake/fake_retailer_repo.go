package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/updeals/retailer-portal/retailers"
)

var _ retailers.Repo = (*FakeRetailerRepo)(nil)

// FakeRetailerRepo is an in-memory retailer store for tests.
type FakeRetailerRepo struct {
	retailers map[string]*retailers.Retailer
	// CreatedFor records subject ids passed to CreateAccount so tests
	// can assert profile linkage happened.
	CreatedFor []string
	lock       sync.RWMutex
}

func NewFakeRetailerRepo() *FakeRetailerRepo {
	return &FakeRetailerRepo{
		retailers: make(map[string]*retailers.Retailer),
	}
}

func (r *FakeRetailerRepo) Upsert(retailer *retailers.Retailer) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if retailer.ID == "" {
		retailer.ID = uuid.New().String()
	}
	r.retailers[retailer.ID] = retailer
}

func (r *FakeRetailerRepo) GetStatus(_ context.Context, retailerID string) (retailers.Status, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ret, ok := r.retailers[retailerID]
	if !ok {
		return "", retailers.ErrNotFound
	}
	return ret.Status, nil
}

func (r *FakeRetailerRepo) GetByID(_ context.Context, retailerID string) (*retailers.Retailer, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ret, ok := r.retailers[retailerID]
	if !ok {
		return nil, retailers.ErrNotFound
	}
	return ret, nil
}

func (r *FakeRetailerRepo) CreateAccount(_ context.Context, params retailers.CreateAccountParams) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	id := uuid.New().String()
	r.retailers[id] = &retailers.Retailer{
		ID:           id,
		BusinessName: params.BusinessName,
		ContactName:  params.ContactName,
		Email:        params.Email,
		Status:       retailers.StatusPending,
		CreatedAt:    time.Now(),
	}
	r.CreatedFor = append(r.CreatedFor, params.SubjectID)
	return id, nil
}
