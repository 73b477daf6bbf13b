//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/adapter"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

// --- Mock Use Cases ---

type mockCheckoutUC struct {
	usecase.CheckoutUseCase // Embed interface for forward compatibility
	mu                      sync.Mutex

	InitiateResult *usecase.InitiateResult
	InitiateError  error
	ResolveResult  *usecase.ResolveResult
	ResolveError   error
	StatusResult   adapter.OrderStatus
	StatusError    error

	ResolveCalls []string // order ids, in call order
}

func (m *mockCheckoutUC) Initiate(ctx context.Context, userID, packageID string) (*usecase.InitiateResult, error) {
	if packageID == "" {
		return nil, domain.ErrMissingPackageID
	}
	if m.InitiateError != nil {
		return nil, m.InitiateError
	}
	return m.InitiateResult, nil
}

func (m *mockCheckoutUC) Resolve(ctx context.Context, userID, orderID string) (*usecase.ResolveResult, error) {
	m.mu.Lock()
	m.ResolveCalls = append(m.ResolveCalls, orderID)
	m.mu.Unlock()
	if m.ResolveError != nil {
		return nil, m.ResolveError
	}
	return m.ResolveResult, nil
}

func (m *mockCheckoutUC) Status(ctx context.Context, userID, orderID string) (adapter.OrderStatus, error) {
	if m.StatusError != nil {
		return adapter.OrderStatusUnknown, m.StatusError
	}
	return m.StatusResult, nil
}

type mockMembershipUC struct {
	usecase.MembershipUseCase

	CurrentResult *model.UserMembership
	CurrentError  error
}

func (m *mockMembershipUC) Current(ctx context.Context, userID string) (*model.UserMembership, error) {
	if m.CurrentError != nil {
		return nil, m.CurrentError
	}
	return m.CurrentResult, nil
}

type mockPackageUC struct {
	usecase.PackageUseCase

	ListResult []*model.MembershipPackage
	ListError  error
}

func (m *mockPackageUC) List(ctx context.Context) ([]*model.MembershipPackage, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.ListResult, nil
}

// --- Test helpers ---

const testSecret = "test-secret"

func newTestServer(co *mockCheckoutUC, me *mockMembershipUC, pk *mockPackageUC) (*chi.Mux, *AuthManager) {
	if co == nil {
		co = &mockCheckoutUC{}
	}
	if me == nil {
		me = &mockMembershipUC{}
	}
	if pk == nil {
		pk = &mockPackageUC{}
	}
	auth := NewAuthManager(testSecret, time.Hour)
	logger := zerolog.Nop()
	srv := NewServer(co, me, pk, auth, &logger)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return r, auth
}

func mintToken(auth *AuthManager, userID string) string {
	tok, err := auth.Mint(userID)
	if err != nil {
		panic(err)
	}
	return tok
}
