// Package client implements the device-side half of the checkout flow: the
// REST client, the pending order record, the approval page interceptor, the
// focus-time reconciler, and the session membership mirror. The server stays
// authoritative; everything here is projection and trigger plumbing.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

// PaymentAPI is the slice of the REST client the checkout flow needs.
type PaymentAPI interface {
	CreateOrder(ctx context.Context, packageID string) (*CreateOrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
	OrderStatus(ctx context.Context, orderID string) (string, error)
}

// Resolution classifies the outcome of a client-side resolution attempt.
type Resolution int

const (
	// ResolutionNone means there was nothing to resolve.
	ResolutionNone Resolution = iota
	// ResolutionResolved means a membership is now active.
	ResolutionResolved
	// ResolutionPending means the order still awaits buyer approval.
	ResolutionPending
	// ResolutionRetry means the payment terminally failed and the user may
	// start a fresh checkout.
	ResolutionRetry
	// ResolutionUnknown means the attempt could not determine the outcome.
	ResolutionUnknown
)

func (r Resolution) String() string {
	switch r {
	case ResolutionNone:
		return "none"
	case ResolutionResolved:
		return "resolved"
	case ResolutionPending:
		return "pending"
	case ResolutionRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// MembershipStateMirror is a session-scoped projection of the active
// membership. It exists so screens can render without a network round trip;
// the server answer always wins over whatever is cached here.
type MembershipStateMirror struct {
	mu  sync.Mutex
	cur *Membership
}

func NewMembershipStateMirror() *MembershipStateMirror { return &MembershipStateMirror{} }

func (m *MembershipStateMirror) Set(mem *Membership) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mem == nil {
		m.cur = nil
		return
	}
	cp := *mem
	m.cur = &cp
}

// Current returns a copy of the mirrored membership, or nil.
func (m *MembershipStateMirror) Current() *Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return nil
	}
	cp := *m.cur
	return &cp
}

// Clear wipes the projection, e.g. at logout.
func (m *MembershipStateMirror) Clear() { m.Set(nil) }

// Session ties one authenticated user's resolution plumbing together. Both
// the interceptor and the reconciler funnel through Resolve so the capture
// endpoint has exactly one client-side caller.
type Session struct {
	userID string
	api    PaymentAPI
	store  repository.PendingOrderStore
	mirror *MembershipStateMirror
	log    *zerolog.Logger
}

func NewSession(userID string, api PaymentAPI, store repository.PendingOrderStore, logger *zerolog.Logger) *Session {
	l := logger.With().Str("component", "ClientSession").Str("user_id", userID).Logger()
	return &Session{
		userID: userID,
		api:    api,
		store:  store,
		mirror: NewMembershipStateMirror(),
		log:    &l,
	}
}

func (s *Session) UserID() string                 { return s.userID }
func (s *Session) Mirror() *MembershipStateMirror { return s.mirror }

// StartCheckout creates a provider order for the package and persists the
// pending record before handing back the approval URL. If persisting fails
// the flow still proceeds; the record is an aid, not a prerequisite.
func (s *Session) StartCheckout(ctx context.Context, pkg Package) (*CreateOrderResult, error) {
	res, err := s.api.CreateOrder(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}

	rec := &model.PendingOrderRecord{
		OrderID: res.OrderID,
		UserID:  s.userID,
		Package: model.PackageSnapshot{
			ID:           pkg.ID,
			Name:         pkg.Name,
			Price:        pkg.Price,
			DurationDays: pkg.DurationDays,
		},
		CreatedAt: time.Now(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("order_id", res.OrderID).Msg("failed to persist pending order record")
	}
	return res, nil
}

// Resolve calls the capture endpoint for orderID, mirrors the resulting
// membership, and clears the pending record. Safe to call from any trigger
// path any number of times; the server replays an already-resolved order.
func (s *Session) Resolve(ctx context.Context, orderID string) (*CaptureResult, error) {
	res, err := s.api.CaptureOrder(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaptureFailed):
			// Terminal on the server; the record is dead weight now.
			s.clearRecord(ctx)
		case errors.Is(err, domain.ErrPaymentNotFound):
			s.clearRecord(ctx)
		}
		return nil, err
	}

	s.mirror.Set(&res.Membership)
	s.clearRecord(ctx)
	if res.Replayed {
		s.log.Debug().Str("order_id", orderID).Msg("capture replayed a prior resolution")
	}
	return res, nil
}

func (s *Session) clearRecord(ctx context.Context) {
	if err := s.store.Clear(ctx, s.userID); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear pending order record")
	}
}
