package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

type Server struct {
	checkoutUC   usecase.CheckoutUseCase
	membershipUC usecase.MembershipUseCase
	packageUC    usecase.PackageUseCase
	auth         *AuthManager
	log          *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	membershipUC usecase.MembershipUseCase,
	packageUC usecase.PackageUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		checkoutUC:   checkoutUC,
		membershipUC: membershipUC,
		packageUC:    packageUC,
		auth:         auth,
		log:          logger,
	}
}

// RegisterRoutes mounts the public API onto the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/api/packages", s.packagesListHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Post("/api/payments/paypal/create", s.paymentCreateHandler)
		r.Post("/api/payments/paypal/capture", s.paymentCaptureHandler)
		r.Get("/api/payments/paypal/status/{orderID}", s.paymentStatusHandler)

		r.Get("/api/memberships/me", s.membershipMeHandler)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
