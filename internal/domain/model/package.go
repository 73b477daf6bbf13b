package model

import (
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
)

// MembershipPackage is immutable reference data describing a purchasable
// membership tier. Prices are stored in VND (integer units).
type MembershipPackage struct {
	ID              string
	Name            string
	Price           int64 // VND
	DurationDays    int
	CanMessageCoach bool // may message an assigned counselor
	CanAssignCoach  bool // may self-assign a counselor
	CreatedAt       time.Time
}

func (p *MembershipPackage) IsZero() bool { return p == nil || p.ID == "" }

// NewMembershipPackage validates and constructs a package.
func NewMembershipPackage(id, name string, price int64, durationDays int, canMessageCoach, canAssignCoach bool) (*MembershipPackage, error) {
	if id == "" || name == "" || price <= 0 || durationDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &MembershipPackage{
		ID:              id,
		Name:            name,
		Price:           price,
		DurationDays:    durationDays,
		CanMessageCoach: canMessageCoach,
		CanAssignCoach:  canAssignCoach,
		CreatedAt:       time.Now(),
	}, nil
}

// PackageSnapshot is the subset of package fields cached client-side next to
// an in-flight order, so the checkout screen can render without a refetch.
type PackageSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	DurationDays int    `json:"duration_days"`
}

func (p *MembershipPackage) Snapshot() PackageSnapshot {
	return PackageSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, DurationDays: p.DurationDays}
}
