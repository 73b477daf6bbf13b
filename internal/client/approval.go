package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var errMissingToken = errors.New("success redirect carries no token parameter")

// Decision tells the embedding webview what to do with a navigation.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionSuppress
)

// NavigationEvent is one attempted navigation inside the approval webview.
type NavigationEvent struct {
	URL string
}

// InterceptorEvents are optional hooks for the UI layer. Nil hooks are
// skipped.
type InterceptorEvents struct {
	OnResolved  func(*CaptureResult)
	OnCancelled func()
	OnError     func(error)
}

// ApprovalInterceptor watches navigations inside the hosted approval page and
// turns the provider's redirect targets into local actions. The redirect URLs
// are never real pages; every recognized one is suppressed.
type ApprovalInterceptor struct {
	session       *Session
	successPrefix string
	cancelPrefix  string
	events        InterceptorEvents
	log           *zerolog.Logger
}

func NewApprovalInterceptor(session *Session, successPrefix, cancelPrefix string, events InterceptorEvents, logger *zerolog.Logger) *ApprovalInterceptor {
	l := logger.With().Str("component", "ApprovalInterceptor").Logger()
	return &ApprovalInterceptor{
		session:       session,
		successPrefix: successPrefix,
		cancelPrefix:  cancelPrefix,
		events:        events,
		log:           &l,
	}
}

// Observe classifies one navigation. The provider's checkout page renders
// intermediate about:srcdoc frames; those are suppressed without any other
// action.
func (i *ApprovalInterceptor) Observe(ctx context.Context, nav NavigationEvent) Decision {
	raw := nav.URL

	if strings.HasPrefix(raw, "about:srcdoc") {
		return DecisionSuppress
	}

	if i.cancelPrefix != "" && strings.HasPrefix(raw, i.cancelPrefix) {
		i.log.Info().Msg("buyer cancelled approval")
		i.session.clearRecord(ctx)
		if i.events.OnCancelled != nil {
			i.events.OnCancelled()
		}
		return DecisionSuppress
	}

	if i.successPrefix != "" && strings.HasPrefix(raw, i.successPrefix) {
		i.handleSuccess(ctx, raw)
		return DecisionSuppress
	}

	return DecisionAllow
}

func (i *ApprovalInterceptor) handleSuccess(ctx context.Context, raw string) {
	orderID := tokenParam(raw)
	if orderID == "" {
		i.emitError(errMissingToken)
		return
	}

	// The record may already be gone if another path resolved first; the
	// capture endpoint stays idempotent either way, this just avoids a
	// pointless network call.
	rec, err := i.session.store.Get(ctx, i.session.userID)
	if err != nil {
		i.emitError(err)
		return
	}
	if rec == nil || !rec.BelongsTo(i.session.userID) || rec.OrderID != orderID || rec.IsStale(time.Now()) {
		i.log.Debug().Str("order_id", orderID).Msg("no matching pending record, skipping capture")
		return
	}

	res, err := i.session.Resolve(ctx, orderID)
	if err != nil {
		i.emitError(err)
		return
	}
	if i.events.OnResolved != nil {
		i.events.OnResolved(res)
	}
}

func (i *ApprovalInterceptor) emitError(err error) {
	i.log.Warn().Err(err).Msg("approval resolution failed")
	if i.events.OnError != nil {
		i.events.OnError(err)
	}
}

// tokenParam pulls the provider order id out of a redirect URL's token query
// parameter.
func tokenParam(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}
