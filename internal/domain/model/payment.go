package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // order created on provider side; awaiting capture
	PaymentStatusSuccess PaymentStatus = "success" // captured and membership granted
	PaymentStatusFailed  PaymentStatus = "failed"  // capture rejected or order voided
)

// Payment records one external charge attempt. A Payment is created exactly
// once per order-creation call and its status leaves pending exactly once.
type Payment struct {
	ID          string // UUID
	UserID      string // UUID
	PackageID   string // UUID of the package the user intends to buy
	OrderID     string // provider order/correlation id, unique
	Amount      int64  // package price in VND; provider settlement may differ (fixed-rate conversion)
	Currency    string // base currency code, "VND"
	Status      PaymentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PaymentDate *time.Time // set only when status becomes success
}

func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}
