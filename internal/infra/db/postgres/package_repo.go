package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

var _ repository.PackageRepository = (*packageRepo)(nil)

type packageRepo struct {
	pool *pgxpool.Pool
}

func NewPackageRepo(pool *pgxpool.Pool) *packageRepo {
	return &packageRepo{pool: pool}
}

const packageColumns = `id, name, price, duration_days, can_message_coach, can_assign_coach, created_at`

func (r *packageRepo) Save(ctx context.Context, tx repository.Tx, pkg *model.MembershipPackage) error {
	const q = `
INSERT INTO membership_packages (
  id, name, price, duration_days, can_message_coach, can_assign_coach, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  name=$2, price=$3, duration_days=$4, can_message_coach=$5, can_assign_coach=$6;`

	_, err := execSQL(ctx, r.pool, tx, q, pkg.ID, pkg.Name, pkg.Price, pkg.DurationDays, pkg.CanMessageCoach, pkg.CanAssignCoach, pkg.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *packageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.MembershipPackage, error) {
	const q = `SELECT ` + packageColumns + ` FROM membership_packages WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPackage(row)
}

func (r *packageRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.MembershipPackage, error) {
	const q = `SELECT ` + packageColumns + ` FROM membership_packages ORDER BY price ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.MembershipPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPackage(row pgx.Row) (*model.MembershipPackage, error) {
	p := &model.MembershipPackage{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.CanMessageCoach, &p.CanAssignCoach, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPackageNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}
