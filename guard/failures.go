package guard

import "fmt"

// FailureKind classifies why a guard denied a request. Callers switch on
// the kind to pick a redirect target; they never need to inspect the
// wrapped error for routing decisions.
type FailureKind string

const (
	// Unauthorized: no valid session (no cookies, partial pair, or the
	// access token failed verification).
	Unauthorized FailureKind = "unauthorized"
	// ProfileMissing: authenticated subject has no profile row yet.
	ProfileMissing FailureKind = "profile_missing"
	// RoleDenied: profile exists but its role is not retailer.
	RoleDenied FailureKind = "role_denied"
	// NoRetailerLinked: retailer-role profile without a linked account.
	NoRetailerLinked FailureKind = "no_retailer_linked"
	// NotApproved: linked retailer is pending, rejected, or gone.
	NotApproved FailureKind = "not_approved"
	// Transient: a resolver failed for infrastructure reasons; this is
	// not a denial and is the only kind that maps to a 500.
	Transient FailureKind = "transient"
)

// Failure is the explicit result type for guard denials. Guards return
// (value, *Failure) rather than panicking or throwing so callers must
// handle every kind.
type Failure struct {
	Kind FailureKind
	Err  error // underlying cause, may be nil for pure policy denials
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("guard: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("guard: %s", f.Kind)
}

// Denied reports whether the failure is a definite authorization denial
// as opposed to an infrastructure fault.
func (f *Failure) Denied() bool {
	return f.Kind != Transient
}

func fail(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}
