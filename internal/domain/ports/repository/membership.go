package repository

import (
	"context"
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// MembershipRepository is the port for user memberships.
//
// ExpireAllActiveByUser and Save are only ever called together, inside one
// transaction, by the capture path; that pairing is what maintains the
// at-most-one-active invariant.
type MembershipRepository interface {
	Save(ctx context.Context, tx Tx, m *model.UserMembership) error
	FindActiveByUser(ctx context.Context, tx Tx, userID string) (*model.UserMembership, error)
	FindByPaymentID(ctx context.Context, tx Tx, paymentID string) (*model.UserMembership, error)
	ExpireAllActiveByUser(ctx context.Context, tx Tx, userID string) (int, error)
	ExpireAllPastDue(ctx context.Context, tx Tx, now time.Time) (int, error)
}
