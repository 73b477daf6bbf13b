package repository

import (
	"context"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// TransactionRepository is the port for the append-only ledger.
type TransactionRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Transaction) error
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Transaction, error)
	CountByReference(ctx context.Context, tx Tx, referenceID string) (int, error)
}
