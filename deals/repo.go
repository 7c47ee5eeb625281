package deals

import "context"

type Repo interface {
	Create(ctx context.Context, params CreateParams) (*Deal, error)
	ListByRetailer(ctx context.Context, retailerID string) ([]*Deal, error)
}
