package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

func newPackageID() string { return uuid.NewString() }

var _ PackageUseCase = (*packageUC)(nil)

// PackageUseCase exposes membership package reference reads. Create exists
// for the seeding commands; the HTTP API never writes the catalog.
type PackageUseCase interface {
	List(ctx context.Context) ([]*model.MembershipPackage, error)
	Get(ctx context.Context, id string) (*model.MembershipPackage, error)
	Create(ctx context.Context, name string, price int64, durationDays int, canMessageCoach, canAssignCoach bool) (*model.MembershipPackage, error)
}

type packageUC struct {
	packages repository.PackageRepository
}

func NewPackageUseCase(packages repository.PackageRepository) *packageUC {
	return &packageUC{packages: packages}
}

func (u *packageUC) List(ctx context.Context) ([]*model.MembershipPackage, error) {
	return u.packages.ListAll(ctx, nil)
}

func (u *packageUC) Get(ctx context.Context, id string) (*model.MembershipPackage, error) {
	return u.packages.FindByID(ctx, nil, id)
}

// Create exists for seeding; packages are reference data the checkout
// subsystem never mutates.
func (u *packageUC) Create(ctx context.Context, name string, price int64, durationDays int, canMessageCoach, canAssignCoach bool) (*model.MembershipPackage, error) {
	pkg, err := model.NewMembershipPackage(newPackageID(), name, price, durationDays, canMessageCoach, canAssignCoach)
	if err != nil {
		return nil, err
	}
	if err := u.packages.Save(ctx, nil, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}
