package adapter

import "context"

// OrderStatus is the normalized provider-reported order state used by the
// status-query fallback path.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // created, not yet approved by the payer
	OrderStatusApproved  OrderStatus = "approved"  // payer approved; capture not yet performed
	OrderStatusCompleted OrderStatus = "completed" // captured
	OrderStatusFailed    OrderStatus = "failed"    // voided or otherwise terminal without capture
	OrderStatusUnknown   OrderStatus = "unknown"   // unrecognized provider value; re-queryable
)

// CaptureOutcome tags a capture result instead of exposing ad hoc provider
// status strings to the use-case layer.
type CaptureOutcome int

const (
	CaptureCompleted CaptureOutcome = iota
	CapturePending
	CaptureFailed
)

// CaptureResult is the tagged result of a capture attempt.
type CaptureResult struct {
	Outcome   CaptureOutcome
	CaptureID string // provider capture id, set when Outcome == CaptureCompleted
	Code      string // provider error/status code, set when Outcome == CaptureFailed
	Message   string
}

// OrderGateway is the hex port for the two-phase order provider.
//
// CreateOrder performs the one and only currency conversion for the order:
// the configured fixed rate is applied to the VND amount at creation time and
// never recomputed at capture (capture is by order id alone).
type OrderGateway interface {
	Name() string

	CreateOrder(ctx context.Context, amountVND int64, referenceID string) (orderID string, approveURL string, err error)
	CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error)
	GetOrderStatus(ctx context.Context, orderID string) (OrderStatus, error)
}
