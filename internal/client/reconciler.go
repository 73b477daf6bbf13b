package client

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/adapter"
)

// StatusPoller reconciles an in-flight order when the app regains focus. One
// provider status query per invocation; it never runs on a timer.
type StatusPoller struct {
	session *Session
	log     *zerolog.Logger
}

func NewStatusPoller(session *Session, logger *zerolog.Logger) *StatusPoller {
	l := logger.With().Str("component", "StatusPoller").Logger()
	return &StatusPoller{session: session, log: &l}
}

// OnFocus checks whether a pending order record can be resolved. A stale
// record (older than the retention window) is dropped without contacting the
// server; if the charge actually went through, the user's support path is the
// remedy, not this poller.
func (p *StatusPoller) OnFocus(ctx context.Context) (Resolution, error) {
	rec, err := p.session.store.Get(ctx, p.session.userID)
	if err != nil {
		return ResolutionUnknown, err
	}
	if rec == nil {
		return ResolutionNone, nil
	}
	if !rec.BelongsTo(p.session.userID) || rec.IsStale(time.Now()) {
		p.log.Info().Str("order_id", rec.OrderID).Msg("dropping stale pending order record")
		p.session.clearRecord(ctx)
		return ResolutionNone, nil
	}

	status, err := p.session.api.OrderStatus(ctx, rec.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			p.session.clearRecord(ctx)
			return ResolutionNone, nil
		}
		return ResolutionUnknown, err
	}

	switch adapter.OrderStatus(status) {
	case adapter.OrderStatusApproved, adapter.OrderStatusCompleted:
		if _, err := p.session.Resolve(ctx, rec.OrderID); err != nil {
			if errors.Is(err, domain.ErrCaptureFailed) {
				return ResolutionRetry, nil
			}
			return ResolutionUnknown, err
		}
		return ResolutionResolved, nil
	case adapter.OrderStatusFailed:
		p.session.clearRecord(ctx)
		return ResolutionRetry, nil
	case adapter.OrderStatusPending:
		return ResolutionPending, nil
	default:
		return ResolutionUnknown, nil
	}
}
