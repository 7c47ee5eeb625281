// Package guard composes the session store with the profile and retailer
// resolvers into the two predicates protected surfaces rely on: "is
// authenticated" and "is an approved retailer".
//
// Guards re-resolve everything on every invocation. Nothing is cached
// across calls, so an admin rejecting a retailer mid-session takes effect
// on that retailer's very next request.
package guard

import (
	"context"
	"errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/profiles"
	"github.com/updeals/retailer-portal/retailers"
	"github.com/updeals/retailer-portal/session"
)

// Access is the result of a successful approved-retailer check. The
// retailer id it carries is the only id callers may use for retailer-
// scoped writes.
type Access struct {
	Session    *session.Session
	Profile    *profiles.Profile
	RetailerID string
}

// Gate holds the guard's collaborators. All are injected at startup.
type Gate struct {
	sessions  *session.Store
	profiles  profiles.Repo
	retailers retailers.Repo
}

func NewGate(sessions *session.Store, profileRepo profiles.Repo, retailerRepo retailers.Repo) (*Gate, error) {
	if sessions == nil {
		return nil, pkgerrors.New("[guard.NewGate] session store is required")
	}
	if profileRepo == nil {
		return nil, pkgerrors.New("[guard.NewGate] profile repo is required")
	}
	if retailerRepo == nil {
		return nil, pkgerrors.New("[guard.NewGate] retailer repo is required")
	}
	return &Gate{sessions: sessions, profiles: profileRepo, retailers: retailerRepo}, nil
}

// RequireAuthenticated reconstructs the session from the request cookies.
// Fails Unauthorized when no valid session exists, Transient when the
// identity provider could not be reached.
func (g *Gate) RequireAuthenticated(ctx context.Context, r *http.Request) (*session.Session, *Failure) {
	sess, err := g.sessions.Read(ctx, r)
	if err != nil {
		if errors.Is(err, identity.ErrProviderUnavailable) {
			return nil, fail(Transient, err)
		}
		return nil, fail(Unauthorized, err)
	}
	return sess, nil
}

// RequireApprovedRetailer runs the full chain: authenticated session,
// retailer-role profile, linked retailer account, approved status. It
// fails with exactly one kind per denial and succeeds only when the
// retailer's status is approved at this very request.
func (g *Gate) RequireApprovedRetailer(ctx context.Context, r *http.Request) (*Access, *Failure) {
	sess, failure := g.RequireAuthenticated(ctx, r)
	if failure != nil {
		return nil, failure
	}

	profile, err := g.profiles.GetByID(ctx, sess.SubjectID)
	if err != nil {
		return nil, fail(Transient, err)
	}
	if profile == nil {
		return nil, fail(ProfileMissing, nil)
	}
	if !profile.IsRetailer() {
		return nil, fail(RoleDenied, nil)
	}
	if profile.RetailerID == nil || *profile.RetailerID == "" {
		return nil, fail(NoRetailerLinked, nil)
	}

	status, err := g.retailers.GetStatus(ctx, *profile.RetailerID)
	if err != nil {
		// A vanished retailer row is a denial, not an outage.
		if errors.Is(err, retailers.ErrNotFound) {
			return nil, fail(NotApproved, err)
		}
		return nil, fail(Transient, err)
	}
	if !status.Approved() {
		return nil, fail(NotApproved, nil)
	}

	return &Access{
		Session:    sess,
		Profile:    profile,
		RetailerID: *profile.RetailerID,
	}, nil
}
