package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through repository methods.
// Repositories accept nil (non-transactional path) and detect the concrete
// handle (e.g. pgx.Tx) implementation-side.
type Tx interface{}

// TransactionManager executes a function within a database transaction,
// passing the underlying handle via `tx`. Keeping the handle opaque keeps
// use-case interfaces free of storage types while still allowing
// SELECT ... FOR UPDATE inside the callback.
//
// Usage:
//
//	tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx Tx) error {
//	    p, err := payments.FindPendingByOrderID(ctx, tx, userID, orderID)
//	    ...
//	    return err
//	})
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
