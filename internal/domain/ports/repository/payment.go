package repository

import (
	"context"
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// PaymentRepository is the port for payment persistence.
//
// FindPendingByOrderID filters on status=pending and is the idempotency guard
// of the capture path: once a payment has left pending, the lookup misses and
// the caller falls back to the terminal row via FindByOrderID.
//
// TransitionFromPending is the compare-and-transition primitive: it moves a
// payment out of pending only if it is still pending, and reports whether
// the transition happened. Racing capture triggers serialize on this; the
// loser observes false and replays the winner's committed result.
type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	FindByOrderID(ctx context.Context, tx Tx, userID, orderID string) (*model.Payment, error)
	FindPendingByOrderID(ctx context.Context, tx Tx, userID, orderID string) (*model.Payment, error)
	TransitionFromPending(ctx context.Context, tx Tx, id string, to model.PaymentStatus, paymentDate *time.Time) (bool, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
