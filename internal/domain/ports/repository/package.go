package repository

import (
	"context"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// PackageRepository is the port for membership package reference data.
// Packages are never mutated by the checkout subsystem.
type PackageRepository interface {
	Save(ctx context.Context, tx Tx, pkg *model.MembershipPackage) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.MembershipPackage, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.MembershipPackage, error)
}
