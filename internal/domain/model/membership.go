package model

import (
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
)

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusExpired MembershipStatus = "expired"
)

// UserMembership grants a user paid capabilities for a bounded period.
// Invariant: at most one row with status=active per user at any instant.
// The capture path is the sole writer and expires previous rows and inserts
// the new one inside a single transaction.
type UserMembership struct {
	ID          string // UUID
	UserID      string // UUID
	PackageID   string // UUID
	PaymentID   string // UUID of the owning payment
	PaymentDate time.Time
	ExpireDate  time.Time // PaymentDate + package duration
	Status      MembershipStatus
	CreatedAt   time.Time
}

// NewUserMembership constructs an active membership starting at paymentDate.
func NewUserMembership(id, userID, paymentID string, pkg *MembershipPackage, paymentDate time.Time) (*UserMembership, error) {
	if id == "" || userID == "" || paymentID == "" || pkg.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	return &UserMembership{
		ID:          id,
		UserID:      userID,
		PackageID:   pkg.ID,
		PaymentID:   paymentID,
		PaymentDate: paymentDate,
		ExpireDate:  paymentDate.Add(time.Duration(pkg.DurationDays) * 24 * time.Hour),
		Status:      MembershipStatusActive,
		CreatedAt:   paymentDate,
	}, nil
}

func (m *UserMembership) IsActive(now time.Time) bool {
	return m != nil && m.Status == MembershipStatusActive && now.Before(m.ExpireDate)
}
