package model

import "time"

const TransactionCategoryMembership = "membership"

// Transaction is an append-only ledger entry recording a successful payment.
// Exactly one Transaction exists per successful Payment; none are written for
// pending or failed payments.
type Transaction struct {
	ID          string // ULID, sortable by creation time
	UserID      string // UUID
	Amount      int64  // VND
	Category    string // e.g. "membership"
	ReferenceID string // owning payment id
	Description string
	CreatedAt   time.Time
}
