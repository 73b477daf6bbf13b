//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
)

// --- MembershipPackage Tests ---

func TestNewMembershipPackage(t *testing.T) {
	t.Run("should create a package successfully", func(t *testing.T) {
		pkg, err := NewMembershipPackage("pkg-1", "Premium 30", 299000, 30, true, true)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if pkg.Price != 299000 {
			t.Errorf("expected price 299000, but got %d", pkg.Price)
		}
		if pkg.DurationDays != 30 {
			t.Errorf("expected duration 30, but got %d", pkg.DurationDays)
		}
	})

	t.Run("should fail with non-positive price", func(t *testing.T) {
		pkg, err := NewMembershipPackage("pkg-1", "Premium 30", 0, 30, true, true)
		if err == nil {
			t.Fatal("expected an error for zero price, but got nil")
		}
		if pkg != nil {
			t.Error("expected package to be nil on error")
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected error to be ErrInvalidArgument, but got %v", err)
		}
	})

	t.Run("should fail with non-positive duration", func(t *testing.T) {
		if _, err := NewMembershipPackage("pkg-1", "Premium 30", 299000, 0, true, true); err == nil {
			t.Fatal("expected an error for zero duration, but got nil")
		}
	})
}

// --- UserMembership Tests ---

func TestNewUserMembership(t *testing.T) {
	pkg := &MembershipPackage{ID: "pkg-1", Name: "Premium 30", Price: 299000, DurationDays: 30}

	t.Run("should compute expire date from payment date", func(t *testing.T) {
		paid := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		m, err := NewUserMembership("mem-1", "user-1", "pay-1", pkg, paid)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if got, want := m.ExpireDate.Sub(m.PaymentDate), 30*24*time.Hour; got != want {
			t.Errorf("expected expire-payment delta %v, but got %v", want, got)
		}
		if m.Status != MembershipStatusActive {
			t.Errorf("expected status active, but got %s", m.Status)
		}
	})

	t.Run("should fail with nil package", func(t *testing.T) {
		if _, err := NewUserMembership("mem-1", "user-1", "pay-1", nil, time.Now()); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, but got %v", err)
		}
	})

	t.Run("IsActive should respect expiry", func(t *testing.T) {
		paid := time.Now().Add(-31 * 24 * time.Hour)
		m, _ := NewUserMembership("mem-1", "user-1", "pay-1", pkg, paid)
		if m.IsActive(time.Now()) {
			t.Error("expected membership past expire date to be inactive")
		}
	})
}

// --- PendingOrderRecord Tests ---

func TestPendingOrderRecord(t *testing.T) {
	rec := &PendingOrderRecord{
		OrderID:   "ord-1",
		UserID:    "user-1",
		Package:   PackageSnapshot{ID: "pkg-1", Price: 299000, DurationDays: 30},
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}

	if !rec.IsStale(time.Now()) {
		t.Error("expected a 25h-old record to be stale")
	}
	if rec.BelongsTo("user-2") {
		t.Error("expected record not to belong to another user")
	}
	rec.CreatedAt = time.Now().Add(-time.Hour)
	if rec.IsStale(time.Now()) {
		t.Error("expected a 1h-old record not to be stale")
	}
}
