// Package profiles maps identity-provider subjects to application-level
// profile records. Profiles are owned by the backing store; this flow only
// reads them.
package profiles

// RoleType represents an application role held by a profile.
type RoleType string

const (
	RoleRetailer RoleType = "retailer"
	RoleAdmin    RoleType = "admin"
)

// Profile links a subject to its role and, for retailers, the retailer
// account it belongs to. RetailerID is nil until an account is linked.
type Profile struct {
	ID         string   `json:"id"`
	Email      string   `json:"email,omitempty"`
	Role       RoleType `json:"role"`
	RetailerID *string  `json:"retailer_id,omitempty"`
}

// IsRetailer reports whether the profile carries the retailer role.
func (p *Profile) IsRetailer() bool {
	return p.Role == RoleRetailer
}
