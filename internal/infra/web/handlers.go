package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/logging"
)

// errorBody is the uniform error envelope. Clients branch on Code, Message is
// for humans.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, struct {
		Error errorBody `json:"error"`
	}{Error: errorBody{Code: code, Message: message}})
}

// writeDomainError maps use case sentinels onto stable API error codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingPackageID):
		writeError(w, http.StatusBadRequest, "MISSING_PACKAGE_ID", "package_id is required")
	case errors.Is(err, domain.ErrMissingOrderID):
		writeError(w, http.StatusBadRequest, "MISSING_ORDER_ID", "order_id is required")
	case errors.Is(err, domain.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, "PACKAGE_NOT_FOUND", "membership package not found")
	case errors.Is(err, domain.ErrActiveMembershipExists):
		writeError(w, http.StatusConflict, "ACTIVE_MEMBERSHIP_EXISTS", "an active membership already exists")
	case errors.Is(err, domain.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, "PAYMENT_NOT_FOUND", "no payment for this order")
	case errors.Is(err, domain.ErrOrderCreationFailed):
		writeError(w, http.StatusBadGateway, "PAYPAL_ORDER_CREATION_FAILED", "could not create the provider order")
	case errors.Is(err, domain.ErrCaptureFailed):
		writeError(w, http.StatusPaymentRequired, "PAYPAL_CAPTURE_FAILED", "payment capture did not complete")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

type paymentResponse struct {
	ID          string     `json:"id"`
	PackageID   string     `json:"package_id"`
	OrderID     string     `json:"order_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

func toPaymentResponse(p *model.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		PackageID:   p.PackageID,
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate,
	}
}

type membershipResponse struct {
	ID          string    `json:"id"`
	PackageID   string    `json:"package_id"`
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	ExpireDate  time.Time `json:"expire_date"`
}

func toMembershipResponse(m *model.UserMembership) membershipResponse {
	return membershipResponse{
		ID:          m.ID,
		PackageID:   m.PackageID,
		PaymentID:   m.PaymentID,
		Status:      string(m.Status),
		PaymentDate: m.PaymentDate,
		ExpireDate:  m.ExpireDate,
	}
}

type paymentCreateRequest struct {
	PackageID string `json:"package_id"`
}

func (s *Server) paymentCreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := logging.UserID(ctx)

	var req paymentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	res, err := s.checkoutUC.Initiate(ctx, userID, req.PackageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		OrderID    string          `json:"order_id"`
		ApproveURL string          `json:"approve_url"`
		Payment    paymentResponse `json:"payment"`
	}{
		OrderID:    res.OrderID,
		ApproveURL: res.ApproveURL,
		Payment:    toPaymentResponse(res.Payment),
	})
}

type paymentCaptureRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) paymentCaptureHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := logging.UserID(ctx)

	var req paymentCaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if req.OrderID == "" {
		writeDomainError(w, domain.ErrMissingOrderID)
		return
	}

	ctx = logging.WithOrderID(ctx, req.OrderID)
	res, err := s.checkoutUC.Resolve(ctx, userID, req.OrderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Membership membershipResponse `json:"membership"`
		Payment    paymentResponse    `json:"payment"`
		Replayed   bool               `json:"replayed"`
	}{
		Membership: toMembershipResponse(res.Membership),
		Payment:    toPaymentResponse(res.Payment),
		Replayed:   res.Replayed,
	})
}

func (s *Server) paymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := logging.UserID(ctx)

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeDomainError(w, domain.ErrMissingOrderID)
		return
	}

	st, err := s.checkoutUC.Status(ctx, userID, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}{OrderID: orderID, Status: string(st)})
}

func (s *Server) membershipMeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := logging.UserID(ctx)

	m, err := s.membershipUC.Current(ctx, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if m == nil {
		// Absence is a normal answer for this endpoint, not an error.
		writeJSON(w, http.StatusOK, struct {
			Membership *membershipResponse `json:"membership"`
		}{Membership: nil})
		return
	}

	resp := toMembershipResponse(m)
	writeJSON(w, http.StatusOK, struct {
		Membership *membershipResponse `json:"membership"`
	}{Membership: &resp})
}

type packageResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationDays    int    `json:"duration_days"`
	CanMessageCoach bool   `json:"can_message_coach"`
	CanAssignCoach  bool   `json:"can_assign_coach"`
}

func toPackageResponse(p *model.MembershipPackage) packageResponse {
	return packageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		DurationDays:    p.DurationDays,
		CanMessageCoach: p.CanMessageCoach,
		CanAssignCoach:  p.CanAssignCoach,
	}
}

func (s *Server) packagesListHandler(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.packageUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]packageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		data = append(data, toPackageResponse(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Data []packageResponse `json:"data"`
	}{Data: data})
}
