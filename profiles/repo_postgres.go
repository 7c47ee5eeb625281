package profiles

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresRepo reads profiles from the user_profiles table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) (*PostgresRepo, error) {
	if pool == nil {
		return nil, errors.New("[profiles.NewPostgresRepo] pool is required")
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, subjectID string) (*Profile, error) {
	const query = `SELECT id, email, role, retailer_id FROM user_profiles WHERE id = $1`

	var p Profile
	err := r.pool.QueryRow(ctx, query, subjectID).Scan(&p.ID, &p.Email, &p.Role, &p.RetailerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[PostgresRepo.GetByID] query user_profiles")
	}
	return &p, nil
}
