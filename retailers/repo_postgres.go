package retailers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresRepo reads retailers from the retailers table and provisions
// accounts through the create_retailer_account database function, which
// runs with elevated rights so the anonymous role never writes the
// tables directly.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) (*PostgresRepo, error) {
	if pool == nil {
		return nil, errors.New("[retailers.NewPostgresRepo] pool is required")
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) GetStatus(ctx context.Context, retailerID string) (Status, error) {
	const query = `SELECT status FROM retailers WHERE id = $1`

	var status Status
	err := r.pool.QueryRow(ctx, query, retailerID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", errors.Wrap(err, "[PostgresRepo.GetStatus] query retailers")
	}
	return status, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, retailerID string) (*Retailer, error) {
	const query = `SELECT id, business_name, COALESCE(contact_name, ''), email, status, created_at
		FROM retailers WHERE id = $1`

	var ret Retailer
	err := r.pool.QueryRow(ctx, query, retailerID).Scan(
		&ret.ID, &ret.BusinessName, &ret.ContactName, &ret.Email, &ret.Status, &ret.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "[PostgresRepo.GetByID] query retailers")
	}
	return &ret, nil
}

func (r *PostgresRepo) CreateAccount(ctx context.Context, params CreateAccountParams) (string, error) {
	const query = `SELECT create_retailer_account($1, $2, $3, $4)`

	var retailerID string
	err := r.pool.QueryRow(ctx, query,
		params.SubjectID, params.Email, params.BusinessName, params.ContactName,
	).Scan(&retailerID)
	if err != nil {
		return "", errors.Wrap(err, "[PostgresRepo.CreateAccount] create_retailer_account")
	}
	return retailerID, nil
}
