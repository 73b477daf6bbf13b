package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

var _ MembershipUseCase = (*membershipUC)(nil)

type MembershipUseCase interface {
	// Current returns the user's active membership, or nil when none exists.
	Current(ctx context.Context, userID string) (*model.UserMembership, error)
	// FinishExpired flips past-due active memberships to expired and returns
	// how many rows changed. Hygiene only; the single-active invariant never
	// depends on it.
	FinishExpired(ctx context.Context) (int, error)
}

type membershipUC struct {
	memberships repository.MembershipRepository
	log         *zerolog.Logger
}

func NewMembershipUseCase(memberships repository.MembershipRepository, logger *zerolog.Logger) *membershipUC {
	l := logger.With().Str("component", "MembershipUC").Logger()
	return &membershipUC{memberships: memberships, log: &l}
}

func (u *membershipUC) Current(ctx context.Context, userID string) (*model.UserMembership, error) {
	m, err := u.memberships.FindActiveByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (u *membershipUC) FinishExpired(ctx context.Context) (int, error) {
	return u.memberships.ExpireAllPastDue(ctx, nil, time.Now())
}
