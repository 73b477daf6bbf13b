//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

func seedMembership(t *testing.T, pkg *model.MembershipPackage, userID string, paymentDate time.Time) *model.UserMembership {
	t.Helper()
	pay := seedPayment(t, pkg, userID, "ord-"+uuid.NewString())
	m, err := model.NewUserMembership(uuid.NewString(), userID, pay.ID, pkg, paymentDate)
	if err != nil {
		t.Fatalf("new membership: %v", err)
	}
	if err := NewMembershipRepo(testPool).Save(context.Background(), nil, m); err != nil {
		t.Fatalf("save membership: %v", err)
	}
	return m
}

func TestMembershipRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewMembershipRepo(testPool)

	t.Run("should save and find the active membership", func(t *testing.T) {
		cleanup(t)
		pkg := seedPackage(t)
		m := seedMembership(t, pkg, "user-1", time.Now())

		found, err := repo.FindActiveByUser(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("find active: %v", err)
		}
		if found.ID != m.ID || found.Status != model.MembershipStatusActive {
			t.Errorf("unexpected membership: %+v", found)
		}

		if _, err := repo.FindActiveByUser(ctx, nil, "user-2"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound for user without membership, got %v", err)
		}
	})

	t.Run("should find a membership by its payment id", func(t *testing.T) {
		cleanup(t)
		pkg := seedPackage(t)
		m := seedMembership(t, pkg, "user-1", time.Now())

		found, err := repo.FindByPaymentID(ctx, nil, m.PaymentID)
		if err != nil {
			t.Fatalf("find by payment id: %v", err)
		}
		if found.ID != m.ID {
			t.Errorf("expected membership %s, got %s", m.ID, found.ID)
		}

		if _, err := repo.FindByPaymentID(ctx, nil, uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown payment, got %v", err)
		}
	})

	t.Run("second active row for the same user violates the partial unique index", func(t *testing.T) {
		cleanup(t)
		pkg := seedPackage(t)
		seedMembership(t, pkg, "user-1", time.Now())

		pay := seedPayment(t, pkg, "user-1", "ord-second")
		second, err := model.NewUserMembership(uuid.NewString(), "user-1", pay.ID, pkg, time.Now())
		if err != nil {
			t.Fatalf("new membership: %v", err)
		}
		if err := repo.Save(ctx, nil, second); err == nil {
			t.Fatal("expected unique index violation inserting a second active membership")
		}
	})

	t.Run("expire then insert swaps the active membership in one transaction", func(t *testing.T) {
		cleanup(t)
		pkg := seedPackage(t)
		old := seedMembership(t, pkg, "user-1", time.Now().Add(-20*24*time.Hour))

		pay := seedPayment(t, pkg, "user-1", "ord-renewal")
		fresh, err := model.NewUserMembership(uuid.NewString(), "user-1", pay.ID, pkg, time.Now())
		if err != nil {
			t.Fatalf("new membership: %v", err)
		}

		tm := NewTxManager(testPool)
		err = tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			n, err := repo.ExpireAllActiveByUser(ctx, tx, "user-1")
			if err != nil {
				return err
			}
			if n != 1 {
				t.Errorf("expected 1 expired row, got %d", n)
			}
			return repo.Save(ctx, tx, fresh)
		})
		if err != nil {
			t.Fatalf("swap transaction: %v", err)
		}

		active, err := repo.FindActiveByUser(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("find active: %v", err)
		}
		if active.ID != fresh.ID {
			t.Errorf("expected fresh membership %s active, got %s", fresh.ID, active.ID)
		}
		previous, err := repo.FindByPaymentID(ctx, nil, old.PaymentID)
		if err != nil {
			t.Fatalf("find previous: %v", err)
		}
		if previous.Status != model.MembershipStatusExpired {
			t.Errorf("expected previous membership expired, got %s", previous.Status)
		}
	})

	t.Run("expire all past due only touches overrun rows", func(t *testing.T) {
		cleanup(t)
		pkg := seedPackage(t)
		overrun := seedMembership(t, pkg, "user-1", time.Now().Add(-40*24*time.Hour))
		current := seedMembership(t, pkg, "user-2", time.Now())

		n, err := repo.ExpireAllPastDue(ctx, nil, time.Now())
		if err != nil {
			t.Fatalf("expire all past due: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 expired row, got %d", n)
		}

		got, err := repo.FindByPaymentID(ctx, nil, overrun.PaymentID)
		if err != nil {
			t.Fatalf("find overrun: %v", err)
		}
		if got.Status != model.MembershipStatusExpired {
			t.Errorf("expected overrun membership expired, got %s", got.Status)
		}
		if _, err := repo.FindActiveByUser(ctx, nil, current.UserID); err != nil {
			t.Errorf("expected user-2 to stay active, got %v", err)
		}
	})
}
