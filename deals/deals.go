// Package deals models the offers a retailer submits from the dashboard.
package deals

import "time"

// Deal is a retailer-submitted offer. Every deal belongs to exactly one
// retailer and is only ever written under that retailer's id as resolved
// by the authorization gate.
type Deal struct {
	ID            string    `json:"id"`
	RetailerID    string    `json:"retailer_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// CreateParams carries the new-deal form fields.
type CreateParams struct {
	RetailerID    string
	Title         string
	Description   string
	Price         float64
	OriginalPrice float64
}
