package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/updeals/retailer-portal/deals"
)

var _ deals.Repo = (*FakeDealRepo)(nil)

// FakeDealRepo is an in-memory deal store for tests.
type FakeDealRepo struct {
	deals []*deals.Deal
	lock  sync.RWMutex
}

func NewFakeDealRepo() *FakeDealRepo {
	return &FakeDealRepo{}
}

func (r *FakeDealRepo) Create(_ context.Context, params deals.CreateParams) (*deals.Deal, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	d := &deals.Deal{
		ID:            uuid.New().String(),
		RetailerID:    params.RetailerID,
		Title:         params.Title,
		Description:   params.Description,
		Price:         params.Price,
		OriginalPrice: params.OriginalPrice,
		CreatedAt:     time.Now(),
	}
	r.deals = append(r.deals, d)
	return d, nil
}

func (r *FakeDealRepo) ListByRetailer(_ context.Context, retailerID string) ([]*deals.Deal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var result []*deals.Deal
	for _, d := range r.deals {
		if d.RetailerID == retailerID {
			result = append(result, d)
		}
	}
	return result, nil
}
