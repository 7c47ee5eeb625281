// Package retailers holds the retailer account model and its approval
// lifecycle. Status transitions (approve, reject) are performed by
// administrators through the backing store; the portal only observes
// them.
package retailers

import "time"

// Status is the approval state of a retailer account.
//
//	register            admin approves
//	(none) --> pending -----------------> approved
//	              |                           |
//	              | admin rejects             | admin revokes
//	              v                           v
//	           rejected                  pending/rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Approved reports whether the status grants dashboard access. Every
// non-approved status is treated identically by the authorization gate.
func (s Status) Approved() bool {
	return s == StatusApproved
}

// Retailer is a business entity gated by approval status.
type Retailer struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name,omitempty"`
	Email        string    `json:"email"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// CreateAccountParams carries the registration form fields consumed by
// the privileged account-creation function.
type CreateAccountParams struct {
	SubjectID    string
	Email        string
	BusinessName string
	ContactName  string
}
