package profiles

import "context"

// Repo reads profile records keyed by subject id. A subject can exist in
// the identity provider without a profile row yet, so not-found is a
// normal nil result, not an error.
type Repo interface {
	GetByID(ctx context.Context, subjectID string) (*Profile, error)
}
