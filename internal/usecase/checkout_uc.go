package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/adapter"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// InitiateResult is returned to the client so it can persist a pending order
// record and open the hosted approval page.
type InitiateResult struct {
	Payment    *model.Payment
	OrderID    string
	ApproveURL string
}

// ResolveResult carries the authoritative outcome of a capture. Replayed is
// true when the payment had already been resolved by an earlier trigger and
// this call returned the previously computed result.
type ResolveResult struct {
	Membership *model.UserMembership
	Payment    *model.Payment
	Replayed   bool
}

type CheckoutUseCase interface {
	// Initiate validates that the user has no active membership, creates a
	// pending Payment and a provider order, and returns the approval URL.
	Initiate(ctx context.Context, userID, packageID string) (*InitiateResult, error)
	// Resolve captures the order and atomically grants the membership. It is
	// idempotent: any trigger source may call it any number of times for the
	// same order id.
	Resolve(ctx context.Context, userID, orderID string) (*ResolveResult, error)
	// Status reports the provider-side order state for the poller fallback.
	Status(ctx context.Context, userID, orderID string) (adapter.OrderStatus, error)
}

type checkoutUC struct {
	payments     repository.PaymentRepository
	packages     repository.PackageRepository
	memberships  repository.MembershipRepository
	transactions repository.TransactionRepository
	gateway      adapter.OrderGateway
	tm           repository.TransactionManager
	log          *zerolog.Logger
}

func NewCheckoutUseCase(
	payments repository.PaymentRepository,
	packages repository.PackageRepository,
	memberships repository.MembershipRepository,
	transactions repository.TransactionRepository,
	gateway adapter.OrderGateway,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *checkoutUC {
	l := logger.With().Str("component", "CheckoutUC").Logger()
	return &checkoutUC{
		payments:     payments,
		packages:     packages,
		memberships:  memberships,
		transactions: transactions,
		gateway:      gateway,
		tm:           tm,
		log:          &l,
	}
}

func (u *checkoutUC) Initiate(ctx context.Context, userID, packageID string) (*InitiateResult, error) {
	if packageID == "" {
		return nil, domain.ErrMissingPackageID
	}

	// Precondition: no active membership. Checked against server state, not
	// any client cache.
	if cur, err := u.memberships.FindActiveByUser(ctx, nil, userID); err == nil && cur != nil {
		metrics.IncOrderCreated("rejected")
		return nil, domain.ErrActiveMembershipExists
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pkg, err := u.packages.FindByID(ctx, nil, packageID)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			metrics.IncOrderCreated("rejected")
		}
		return nil, err
	}

	now := time.Now()
	p := &model.Payment{
		ID:        uuid.NewString(),
		UserID:    userID,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Currency:  "VND",
		Status:    model.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.payments.Save(ctx, nil, p); err != nil {
		return nil, err
	}

	orderID, approveURL, err := u.gateway.CreateOrder(ctx, p.Amount, p.ID)
	if err != nil {
		// Remove the orphaned pending row so a retry starts clean.
		if delErr := u.payments.Delete(ctx, nil, p.ID); delErr != nil {
			u.log.Error().Err(delErr).Str("payment_id", p.ID).Msg("failed to delete orphaned payment")
		}
		metrics.IncOrderCreated("provider_error")
		u.log.Error().Err(err).Str("package_id", pkg.ID).Msg("provider order creation failed")
		return nil, domain.ErrOrderCreationFailed
	}

	p.OrderID = orderID
	p.UpdatedAt = time.Now()
	if err := u.payments.Save(ctx, nil, p); err != nil {
		return nil, err
	}

	metrics.IncOrderCreated("ok")
	u.log.Info().Str("order_id", orderID).Str("payment_id", p.ID).Str("package_id", pkg.ID).Msg("order created")
	return &InitiateResult{Payment: p, OrderID: orderID, ApproveURL: approveURL}, nil
}

func (u *checkoutUC) Resolve(ctx context.Context, userID, orderID string) (*ResolveResult, error) {
	if orderID == "" {
		return nil, domain.ErrMissingOrderID
	}

	p, err := u.payments.FindPendingByOrderID(ctx, nil, userID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			// Idempotency guard: the pending lookup misses once the payment
			// has left pending. Return the previously computed result.
			return u.replay(ctx, nil, userID, orderID)
		}
		return nil, err
	}

	pkg, err := u.packages.FindByID(ctx, nil, p.PackageID)
	if err != nil {
		return nil, err
	}

	// Capture before opening the transaction; the provider call is safe to
	// repeat and the CAS below decides which caller's result wins.
	capture, err := u.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if capture.Outcome != adapter.CaptureCompleted {
		won, terr := u.payments.TransitionFromPending(ctx, nil, p.ID, model.PaymentStatusFailed, nil)
		if terr != nil {
			return nil, terr
		}
		if !won {
			// A racing trigger resolved the payment while we were talking to
			// the provider (the provider then rejects the second capture).
			// Return that trigger's committed result instead.
			return u.replay(ctx, nil, userID, orderID)
		}
		metrics.IncCapture("failed")
		u.log.Warn().Str("order_id", orderID).Str("code", capture.Code).Msg("capture rejected by provider")
		return nil, domain.ErrCaptureFailed
	}

	var res *ResolveResult
	txErr := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		now := time.Now()
		won, err := u.payments.TransitionFromPending(ctx, tx, p.ID, model.PaymentStatusSuccess, &now)
		if err != nil {
			return err
		}
		if !won {
			// Another trigger resolved the order between our lookup and the
			// transition. Read its committed result.
			r, err := u.replay(ctx, tx, userID, orderID)
			if err != nil {
				return err
			}
			res = r
			return nil
		}

		if _, err := u.memberships.ExpireAllActiveByUser(ctx, tx, userID); err != nil {
			return err
		}
		m, err := model.NewUserMembership(uuid.NewString(), userID, p.ID, pkg, now)
		if err != nil {
			return err
		}
		if err := u.memberships.Save(ctx, tx, m); err != nil {
			return err
		}
		t := &model.Transaction{
			ID:          ulid.Make().String(),
			UserID:      userID,
			Amount:      p.Amount,
			Category:    model.TransactionCategoryMembership,
			ReferenceID: p.ID,
			Description: "Membership purchase: " + pkg.Name,
			CreatedAt:   now,
		}
		if err := u.transactions.Save(ctx, tx, t); err != nil {
			return err
		}

		paid := *p
		paid.Status = model.PaymentStatusSuccess
		paid.PaymentDate = &now
		paid.UpdatedAt = now
		res = &ResolveResult{Membership: m, Payment: &paid}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if res.Replayed {
		metrics.IncCapture("replayed")
	} else {
		metrics.IncCapture("success")
		metrics.IncMembershipsActivated()
		metrics.AddPaymentRevenue(res.Payment.Currency, res.Payment.Amount)
	}
	u.log.Info().Str("order_id", orderID).Str("membership_id", res.Membership.ID).Bool("replayed", res.Replayed).Msg("order resolved")
	return res, nil
}

// replay returns the previously computed result for an order that has
// already left pending, so re-resolution from a second trigger source is a
// safe no-op.
func (u *checkoutUC) replay(ctx context.Context, tx repository.Tx, userID, orderID string) (*ResolveResult, error) {
	p, err := u.payments.FindByOrderID(ctx, tx, userID, orderID)
	if err != nil {
		metrics.IncCapture("not_found")
		return nil, err
	}
	switch p.Status {
	case model.PaymentStatusSuccess:
		m, err := u.memberships.FindByPaymentID(ctx, tx, p.ID)
		if err != nil {
			return nil, err
		}
		return &ResolveResult{Membership: m, Payment: p, Replayed: true}, nil
	case model.PaymentStatusFailed:
		return nil, domain.ErrCaptureFailed
	default:
		// Still pending; the row reappeared between lookups. Treat as not
		// found and let the caller retry.
		metrics.IncCapture("not_found")
		return nil, domain.ErrPaymentNotFound
	}
}

func (u *checkoutUC) Status(ctx context.Context, userID, orderID string) (adapter.OrderStatus, error) {
	if orderID == "" {
		return adapter.OrderStatusUnknown, domain.ErrMissingOrderID
	}
	// Scope the query to the caller's own orders.
	if _, err := u.payments.FindByOrderID(ctx, nil, userID, orderID); err != nil {
		return adapter.OrderStatusUnknown, err
	}
	return u.gateway.GetOrderStatus(ctx, orderID)
}
