package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/config"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/adapter"
)

var _ adapter.OrderGateway = (*PayPalGateway)(nil)

// PayPalGateway implements the two-phase order protocol against PayPal's
// Orders API (create -> payer approval -> capture).
type PayPalGateway struct {
	client     *paypal.Client
	currency   string
	vndPerUnit int64
	returnURL  string
	cancelURL  string
	brandName  string
}

func NewPayPalGateway(ctx context.Context, cfg config.PayPalConfig) (*PayPalGateway, error) {
	base := paypal.APIBaseLive
	if cfg.Sandbox {
		base = paypal.APIBaseSandBox
	}
	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	if _, err := client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal access token: %w", err)
	}
	return &PayPalGateway{
		client:     client,
		currency:   strings.ToUpper(cfg.Currency),
		vndPerUnit: cfg.VNDPerUnit,
		returnURL:  cfg.ReturnURL,
		cancelURL:  cfg.CancelURL,
		brandName:  cfg.BrandName,
	}, nil
}

func (g *PayPalGateway) Name() string { return "paypal" }

// settlementValue converts a VND amount to the settlement currency using the
// configured fixed rate, rounded to the provider's minimum unit (2 fraction
// digits). Applied exactly once, at order creation; capture never recomputes
// it. Known limitation: the displayed VND price and the settled amount drift
// with this rate.
func (g *PayPalGateway) settlementValue(amountVND int64) string {
	return decimal.NewFromInt(amountVND).
		Div(decimal.NewFromInt(g.vndPerUnit)).
		Round(2).
		StringFixed(2)
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, amountVND int64, referenceID string) (string, string, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: referenceID,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: g.currency,
				Value:    g.settlementValue(amountVND),
			},
			Description: "Smoking cessation membership",
		},
	}
	appCtx := &paypal.ApplicationContext{
		ReturnURL: g.returnURL,
		CancelURL: g.cancelURL,
		BrandName: g.brandName,
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return "", "", fmt.Errorf("create order: %w", err)
	}

	approveURL := approvalLink(order)
	if approveURL == "" {
		return "", "", errors.New("create order: no approval link in response")
	}
	return order.ID, approveURL, nil
}

func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (adapter.CaptureResult, error) {
	capture, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		var perr *paypal.ErrorResponse
		if errors.As(err, &perr) {
			return adapter.CaptureResult{Outcome: adapter.CaptureFailed, Code: perr.Name, Message: perr.Message}, nil
		}
		return adapter.CaptureResult{}, fmt.Errorf("capture order: %w", err)
	}

	switch capture.Status {
	case "COMPLETED":
		return adapter.CaptureResult{Outcome: adapter.CaptureCompleted, CaptureID: captureID(capture)}, nil
	case "PENDING":
		return adapter.CaptureResult{Outcome: adapter.CapturePending}, nil
	default:
		return adapter.CaptureResult{Outcome: adapter.CaptureFailed, Code: capture.Status}, nil
	}
}

func (g *PayPalGateway) GetOrderStatus(ctx context.Context, orderID string) (adapter.OrderStatus, error) {
	order, err := g.client.GetOrder(ctx, orderID)
	if err != nil {
		return adapter.OrderStatusUnknown, fmt.Errorf("get order: %w", err)
	}
	return mapOrderStatus(order.Status), nil
}

func mapOrderStatus(s string) adapter.OrderStatus {
	switch s {
	case "COMPLETED":
		return adapter.OrderStatusCompleted
	case "APPROVED":
		return adapter.OrderStatusApproved
	case "CREATED", "SAVED", "PAYER_ACTION_REQUIRED":
		return adapter.OrderStatusPending
	case "VOIDED":
		return adapter.OrderStatusFailed
	default:
		return adapter.OrderStatusUnknown
	}
}

// approvalLink pulls the payer-facing approval URL out of the order HATEOAS links.
func approvalLink(order *paypal.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" || link.Rel == "payer-action" {
			return link.Href
		}
	}
	return ""
}

func captureID(resp *paypal.CaptureOrderResponse) string {
	for _, pu := range resp.PurchaseUnits {
		if pu.Payments == nil {
			continue
		}
		for _, c := range pu.Payments.Captures {
			if c.ID != "" {
				return c.ID
			}
		}
	}
	return ""
}
