package repository

import (
	"context"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// PendingOrderStore holds at most one in-flight order record per user,
// outside process memory so it survives an app restart. It is advisory
// only: cleared on success, cancel, user mismatch, or staleness, and never
// treated as proof of payment.
type PendingOrderStore interface {
	Put(ctx context.Context, rec *model.PendingOrderRecord) error
	// Get returns (nil, nil) when no record exists for the user.
	Get(ctx context.Context, userID string) (*model.PendingOrderRecord, error)
	Clear(ctx context.Context, userID string) error
}
