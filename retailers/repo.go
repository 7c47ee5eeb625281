package retailers

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a retailer id resolves to no row, e.g. the
// account was deleted after a profile linked to it. Callers gating on
// approval must treat it as not approved.
var ErrNotFound = errors.New("retailer not found")

type Repo interface {
	// GetStatus resolves a retailer id to its approval status.
	GetStatus(ctx context.Context, retailerID string) (Status, error)
	GetByID(ctx context.Context, retailerID string) (*Retailer, error)
	// CreateAccount provisions a retailer row plus its profile linkage
	// through the store's privileged function, returning the new
	// retailer id. The new account always starts pending.
	CreateAccount(ctx context.Context, params CreateAccountParams) (string, error)
}
