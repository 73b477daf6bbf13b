package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, package_id, order_id, amount, currency, status, created_at, updated_at, payment_date`

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  id, user_id, package_id, order_id, amount, currency, status, created_at, updated_at, payment_date
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  order_id=$4, amount=$5, currency=$6, status=$7, updated_at=$9, payment_date=$10;`

	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.PackageID, p.OrderID, p.Amount, p.Currency, p.Status, p.CreatedAt, p.UpdatedAt, p.PaymentDate)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, userID, orderID string) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 AND order_id=$2 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID, orderID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

// FindPendingByOrderID filters on status=pending; inside a transaction the
// row is locked FOR UPDATE so concurrent capture triggers serialize here.
func (r *paymentRepo) FindPendingByOrderID(ctx context.Context, tx repository.Tx, userID, orderID string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 AND order_id=$2 AND status='pending' LIMIT 1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, userID, orderID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

// TransitionFromPending performs the compare-and-transition that makes the
// capture path safe under racing triggers: only the call that still sees
// status='pending' flips the row.
func (r *paymentRepo) TransitionFromPending(ctx context.Context, tx repository.Tx, id string, to model.PaymentStatus, paymentDate *time.Time) (bool, error) {
	const q = `UPDATE payments SET status=$2, payment_date=COALESCE($3, payment_date), updated_at=NOW() WHERE id=$1 AND status='pending';`
	tag, err := execSQL(ctx, r.pool, tx, q, id, to, paymentDate)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() == 1, nil
}

func (r *paymentRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM payments WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.UserID, &p.PackageID, &p.OrderID, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.PaymentDate); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}
