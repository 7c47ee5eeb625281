package deals

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) (*PostgresRepo, error) {
	if pool == nil {
		return nil, errors.New("[deals.NewPostgresRepo] pool is required")
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Create(ctx context.Context, params CreateParams) (*Deal, error) {
	const query = `INSERT INTO deals (retailer_id, title, description, price, original_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, retailer_id, title, COALESCE(description, ''), price, COALESCE(original_price, 0), created_at`

	var d Deal
	err := r.pool.QueryRow(ctx, query,
		params.RetailerID, params.Title, params.Description, params.Price, params.OriginalPrice,
	).Scan(&d.ID, &d.RetailerID, &d.Title, &d.Description, &d.Price, &d.OriginalPrice, &d.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.Create] insert deal")
	}
	return &d, nil
}

func (r *PostgresRepo) ListByRetailer(ctx context.Context, retailerID string) ([]*Deal, error) {
	const query = `SELECT id, retailer_id, title, COALESCE(description, ''), price, COALESCE(original_price, 0), created_at
		FROM deals WHERE retailer_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, retailerID)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByRetailer] query deals")
	}
	defer rows.Close()

	var result []*Deal
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.RetailerID, &d.Title, &d.Description, &d.Price, &d.OriginalPrice, &d.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[PostgresRepo.ListByRetailer] scan deal")
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByRetailer] iterate deals")
	}
	return result, nil
}
