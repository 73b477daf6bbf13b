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

var _ repository.MembershipRepository = (*membershipRepo)(nil)

type membershipRepo struct {
	pool *pgxpool.Pool
}

func NewMembershipRepo(pool *pgxpool.Pool) *membershipRepo {
	return &membershipRepo{pool: pool}
}

const membershipColumns = `id, user_id, package_id, payment_id, payment_date, expire_date, status, created_at`

func (r *membershipRepo) Save(ctx context.Context, tx repository.Tx, m *model.UserMembership) error {
	const q = `
INSERT INTO user_memberships (
  id, user_id, package_id, payment_id, payment_date, expire_date, status, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  payment_date=$5, expire_date=$6, status=$7;`

	_, err := execSQL(ctx, r.pool, tx, q, m.ID, m.UserID, m.PackageID, m.PaymentID, m.PaymentDate, m.ExpireDate, m.Status, m.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *membershipRepo) FindActiveByUser(ctx context.Context, tx repository.Tx, userID string) (*model.UserMembership, error) {
	const q = `
SELECT ` + membershipColumns + `
  FROM user_memberships
 WHERE user_id=$1 AND status='active'
 ORDER BY created_at DESC
 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanMembership(row)
}

func (r *membershipRepo) FindByPaymentID(ctx context.Context, tx repository.Tx, paymentID string) (*model.UserMembership, error) {
	const q = `SELECT ` + membershipColumns + ` FROM user_memberships WHERE payment_id=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, paymentID)
	if err != nil {
		return nil, err
	}
	return scanMembership(row)
}

func (r *membershipRepo) ExpireAllActiveByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	const q = `UPDATE user_memberships SET status='expired' WHERE user_id=$1 AND status='active';`
	tag, err := execSQL(ctx, r.pool, tx, q, userID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return 0, err
		}
		return 0, domain.ErrOperationFailed
	}
	return int(tag.RowsAffected()), nil
}

func (r *membershipRepo) ExpireAllPastDue(ctx context.Context, tx repository.Tx, now time.Time) (int, error) {
	const q = `UPDATE user_memberships SET status='expired' WHERE status='active' AND expire_date <= $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, now)
	if err != nil {
		return 0, domain.ErrOperationFailed
	}
	return int(tag.RowsAffected()), nil
}

func scanMembership(row pgx.Row) (*model.UserMembership, error) {
	m := &model.UserMembership{}
	if err := row.Scan(&m.ID, &m.UserID, &m.PackageID, &m.PaymentID, &m.PaymentDate, &m.ExpireDate, &m.Status, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return m, nil
}
