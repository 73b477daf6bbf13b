package model

import "time"

// PendingOrderMaxAge is the staleness cutoff for client-side pending order
// records. Older records are discarded without touching the server; capture
// remains valid against the server regardless of local record age.
const PendingOrderMaxAge = 24 * time.Hour

// PendingOrderRecord is the client-local, advisory cache of an in-flight
// order attempt. It exists so the attempt survives an app restart between
// order creation and resolution. It is never proof of payment: every
// invariant must hold from server state alone.
type PendingOrderRecord struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	Package   PackageSnapshot `json:"package"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsStale reports whether the record is past the 24-hour hygiene cutoff.
func (r *PendingOrderRecord) IsStale(now time.Time) bool {
	return now.Sub(r.CreatedAt) > PendingOrderMaxAge
}

// BelongsTo reports whether the record was written for the given user.
// Records for a different user are treated as absent and cleared.
func (r *PendingOrderRecord) BelongsTo(userID string) bool {
	return r != nil && r.UserID == userID
}
