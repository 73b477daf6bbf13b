package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/metrics"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

// ExpiryWorker periodically flips past-due memberships to expired via the use
// case. Access checks never rely on it; it keeps the table tidy for reads.
type ExpiryWorker struct {
	interval     time.Duration
	membershipUC usecase.MembershipUseCase
	log          *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, membershipUC usecase.MembershipUseCase, logger *zerolog.Logger) *ExpiryWorker {
	exprLog := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval:     interval,
		membershipUC: membershipUC,
		log:          &exprLog,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.membershipUC.FinishExpired(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("expiry worker error")
			}
			if n > 0 {
				metrics.IncMembershipsExpired(n)
				w.log.Info().Int("count", n).Msg("expired memberships finished")
			}
		}
	}
}
