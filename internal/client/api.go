package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
)

// Wire types mirroring the server's JSON responses.

type Payment struct {
	ID          string     `json:"id"`
	PackageID   string     `json:"package_id"`
	OrderID     string     `json:"order_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

type Membership struct {
	ID          string    `json:"id"`
	PackageID   string    `json:"package_id"`
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	ExpireDate  time.Time `json:"expire_date"`
}

type Package struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationDays    int    `json:"duration_days"`
	CanMessageCoach bool   `json:"can_message_coach"`
	CanAssignCoach  bool   `json:"can_assign_coach"`
}

type CreateOrderResult struct {
	OrderID    string  `json:"order_id"`
	ApproveURL string  `json:"approve_url"`
	Payment    Payment `json:"payment"`
}

type CaptureResult struct {
	Membership Membership `json:"membership"`
	Payment    Payment    `json:"payment"`
	Replayed   bool       `json:"replayed"`
}

// APIError carries the server's stable error code alongside the HTTP status.
type APIError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.HTTPStatus, e.Code, e.Message)
}

// Is lets callers match server codes against the domain sentinels with
// errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrActiveMembershipExists:
		return e.Code == "ACTIVE_MEMBERSHIP_EXISTS"
	case domain.ErrPackageNotFound:
		return e.Code == "PACKAGE_NOT_FOUND"
	case domain.ErrPaymentNotFound:
		return e.Code == "PAYMENT_NOT_FOUND"
	case domain.ErrCaptureFailed:
		return e.Code == "PAYPAL_CAPTURE_FAILED"
	case domain.ErrOrderCreationFailed:
		return e.Code == "PAYPAL_ORDER_CREATION_FAILED"
	case domain.ErrMissingPackageID:
		return e.Code == "MISSING_PACKAGE_ID"
	case domain.ErrMissingOrderID:
		return e.Code == "MISSING_ORDER_ID"
	case domain.ErrUnauthorized:
		return e.Code == "UNAUTHORIZED"
	}
	return false
}

// APIClient is a thin JSON wrapper over the payment and membership endpoints.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zerolog.Logger
}

var _ PaymentAPI = (*APIClient)(nil)

func NewAPIClient(baseURL, token string, logger *zerolog.Logger) *APIClient {
	l := logger.With().Str("component", "APIClient").Logger()
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     &l,
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return &APIError{HTTPStatus: resp.StatusCode, Code: "INTERNAL", Message: resp.Status}
		}
		return &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateOrder starts a checkout for the package and returns the order id and
// the hosted approval URL.
func (c *APIClient) CreateOrder(ctx context.Context, packageID string) (*CreateOrderResult, error) {
	var res CreateOrderResult
	err := c.do(ctx, http.MethodPost, "/api/payments/paypal/create", struct {
		PackageID string `json:"package_id"`
	}{PackageID: packageID}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CaptureOrder asks the server to capture and grant. Idempotent server-side.
func (c *APIClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	var res CaptureResult
	err := c.do(ctx, http.MethodPost, "/api/payments/paypal/capture", struct {
		OrderID string `json:"order_id"`
	}{OrderID: orderID}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// OrderStatus reports the provider order state for the poller fallback.
func (c *APIClient) OrderStatus(ctx context.Context, orderID string) (string, error) {
	var res struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/payments/paypal/status/"+orderID, nil, &res); err != nil {
		return "", err
	}
	return res.Status, nil
}

// CurrentMembership fetches the authoritative active membership, nil when none.
func (c *APIClient) CurrentMembership(ctx context.Context) (*Membership, error) {
	var res struct {
		Membership *Membership `json:"membership"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/memberships/me", nil, &res); err != nil {
		return nil, err
	}
	return res.Membership, nil
}

// Packages lists the purchasable membership packages.
func (c *APIClient) Packages(ctx context.Context) ([]Package, error) {
	var res struct {
		Data []Package `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/packages", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}
