package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/updeals/retailer-portal/guard"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/internal/utils"
	"github.com/updeals/retailer-portal/profiles"
	profilefakes "github.com/updeals/retailer-portal/profiles/repofake"
	"github.com/updeals/retailer-portal/retailers"
	retailerfakes "github.com/updeals/retailer-portal/retailers/repofake"
	"github.com/updeals/retailer-portal/session"
)

const (
	testSubjectID  = "subject-1"
	testEmail      = "owner@shop.example"
	testRetailerID = "R1"
	validToken     = "valid-access-token"
	refreshToken   = "refresh-token-1"
)

// countingVerifier counts verification calls so tests can assert the gate
// makes no outbound calls for cookie-less requests.
type countingVerifier struct {
	calls int
}

var _ identity.Verifier = (*countingVerifier)(nil)

func (v *countingVerifier) Verify(_ context.Context, accessToken string) (*identity.Subject, error) {
	v.calls++
	if accessToken != validToken {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Subject{ID: testSubjectID, Email: testEmail}, nil
}

type testFixture struct {
	verifier  *countingVerifier
	profiles  *profilefakes.FakeProfileRepo
	retailers *retailerfakes.FakeRetailerRepo
	gate      *guard.Gate
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	verifier := &countingVerifier{}
	store, err := session.NewStore(verifier, false)
	require.NoError(t, err)

	pr := profilefakes.NewFakeProfileRepo()
	rr := retailerfakes.NewFakeRetailerRepo()

	gate, err := guard.NewGate(store, pr, rr)
	require.NoError(t, err)

	return &testFixture{verifier: verifier, profiles: pr, retailers: rr, gate: gate}
}

// withRetailer seeds a profile linked to a retailer in the given status.
func (f *testFixture) withRetailer(status retailers.Status) {
	f.retailers.Upsert(&retailers.Retailer{
		ID:           testRetailerID,
		BusinessName: "Perfect Shop",
		Email:        testEmail,
		Status:       status,
	})
	f.profiles.Upsert(&profiles.Profile{
		ID:         testSubjectID,
		Email:      testEmail,
		Role:       profiles.RoleRetailer,
		RetailerID: utils.Ptr(testRetailerID),
	})
}

func authedRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: validToken})
	r.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: refreshToken})
	return r
}

func TestRequireAuthenticatedNoCookiesMakesNoOutboundCalls(t *testing.T) {
	f := setupTestFixture(t)

	_, failure := f.gate.RequireAuthenticated(context.Background(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NotNil(t, failure)
	require.Equal(t, guard.Unauthorized, failure.Kind)
	require.Zero(t, f.verifier.calls)
}

func TestRequireAuthenticatedInvalidTokenIsUnauthorized(t *testing.T) {
	f := setupTestFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: "stale-token"})
	r.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: refreshToken})

	_, failure := f.gate.RequireAuthenticated(context.Background(), r)
	require.NotNil(t, failure)
	require.Equal(t, guard.Unauthorized, failure.Kind)
}

func TestRequireAuthenticatedValidSession(t *testing.T) {
	f := setupTestFixture(t)

	sess, failure := f.gate.RequireAuthenticated(context.Background(), authedRequest())
	require.Nil(t, failure)
	require.Equal(t, testSubjectID, sess.SubjectID)
	require.Equal(t, testEmail, sess.Email)
}

func TestRequireApprovedRetailerFailureMatrix(t *testing.T) {
	tests := []struct {
		name     string
		seed     func(f *testFixture)
		wantKind guard.FailureKind
	}{
		{
			name:     "no profile row",
			seed:     func(f *testFixture) {},
			wantKind: guard.ProfileMissing,
		},
		{
			name: "role is not retailer",
			seed: func(f *testFixture) {
				f.profiles.Upsert(&profiles.Profile{ID: testSubjectID, Role: profiles.RoleAdmin})
			},
			wantKind: guard.RoleDenied,
		},
		{
			name: "no retailer linked",
			seed: func(f *testFixture) {
				f.profiles.Upsert(&profiles.Profile{ID: testSubjectID, Role: profiles.RoleRetailer})
			},
			wantKind: guard.NoRetailerLinked,
		},
		{
			name: "retailer row missing",
			seed: func(f *testFixture) {
				f.profiles.Upsert(&profiles.Profile{
					ID: testSubjectID, Role: profiles.RoleRetailer, RetailerID: utils.Ptr("R-deleted"),
				})
			},
			wantKind: guard.NotApproved,
		},
		{
			name: "retailer pending",
			seed: func(f *testFixture) {
				f.withRetailer(retailers.StatusPending)
			},
			wantKind: guard.NotApproved,
		},
		{
			name: "retailer rejected",
			seed: func(f *testFixture) {
				f.withRetailer(retailers.StatusRejected)
			},
			wantKind: guard.NotApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			tt.seed(f)

			access, failure := f.gate.RequireApprovedRetailer(context.Background(), authedRequest())
			require.Nil(t, access)
			require.NotNil(t, failure)
			require.Equal(t, tt.wantKind, failure.Kind)
			require.True(t, failure.Denied())
		})
	}
}

func TestRequireApprovedRetailerSucceedsOnlyWhenApproved(t *testing.T) {
	f := setupTestFixture(t)
	f.withRetailer(retailers.StatusApproved)

	access, failure := f.gate.RequireApprovedRetailer(context.Background(), authedRequest())
	require.Nil(t, failure)
	require.Equal(t, testSubjectID, access.Session.SubjectID)
	require.Equal(t, testRetailerID, access.RetailerID)
	require.Equal(t, profiles.RoleRetailer, access.Profile.Role)
}

func TestGateReResolvesStatusOnEveryCall(t *testing.T) {
	f := setupTestFixture(t)
	f.withRetailer(retailers.StatusApproved)

	_, failure := f.gate.RequireApprovedRetailer(context.Background(), authedRequest())
	require.Nil(t, failure)

	// Admin revokes mid-session: the very next request must be denied.
	f.retailers.Upsert(&retailers.Retailer{ID: testRetailerID, Status: retailers.StatusRejected})

	_, failure = f.gate.RequireApprovedRetailer(context.Background(), authedRequest())
	require.NotNil(t, failure)
	require.Equal(t, guard.NotApproved, failure.Kind)
}

func TestRequireApprovedRetailerUnauthenticated(t *testing.T) {
	f := setupTestFixture(t)
	f.withRetailer(retailers.StatusApproved)

	_, failure := f.gate.RequireApprovedRetailer(context.Background(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NotNil(t, failure)
	require.Equal(t, guard.Unauthorized, failure.Kind)
	require.Zero(t, f.verifier.calls)
}
