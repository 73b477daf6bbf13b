//go:build !integration

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/adapter"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memPackageRepo is a small in-memory implementation used by unit tests.
type memPackageRepo struct {
	mu    sync.RWMutex
	store map[string]*model.MembershipPackage
}

func newMemPackageRepo() *memPackageRepo {
	return &memPackageRepo{store: make(map[string]*model.MembershipPackage)}
}

func (m *memPackageRepo) Save(ctx context.Context, tx repository.Tx, pkg *model.MembershipPackage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pkg
	m.store[pkg.ID] = &cp
	return nil
}

func (m *memPackageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.MembershipPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrPackageNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPackageRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.MembershipPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.MembershipPackage, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// memPaymentRepo holds payments keyed by id. TransitionFromPending is
// guarded by the same mutex, so the compare-and-transition is atomic the
// way the SQL UPDATE ... WHERE status='pending' is.
type memPaymentRepo struct {
	mu      sync.Mutex
	store   map[string]*model.Payment
	saveErr error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]*model.Payment)}
}

func (m *memPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, userID, orderID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.store {
		if p.UserID == userID && p.OrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *memPaymentRepo) FindPendingByOrderID(ctx context.Context, tx repository.Tx, userID, orderID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.store {
		if p.UserID == userID && p.OrderID == orderID && p.Status == model.PaymentStatusPending {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *memPaymentRepo) TransitionFromPending(ctx context.Context, tx repository.Tx, id string, to model.PaymentStatus, paymentDate *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = to
	if paymentDate != nil {
		d := *paymentDate
		p.PaymentDate = &d
	}
	p.UpdatedAt = time.Now()
	return true, nil
}

func (m *memPaymentRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *memPaymentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store)
}

type memMembershipRepo struct {
	mu    sync.Mutex
	store []*model.UserMembership
}

func newMemMembershipRepo() *memMembershipRepo { return &memMembershipRepo{} }

func (m *memMembershipRepo) Save(ctx context.Context, tx repository.Tx, um *model.UserMembership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.store {
		if existing.ID == um.ID {
			cp := *um
			m.store[i] = &cp
			return nil
		}
	}
	cp := *um
	m.store = append(m.store, &cp)
	return nil
}

func (m *memMembershipRepo) FindActiveByUser(ctx context.Context, tx repository.Tx, userID string) (*model.UserMembership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.UserMembership
	for _, um := range m.store {
		if um.UserID == userID && um.Status == model.MembershipStatusActive {
			if latest == nil || um.CreatedAt.After(latest.CreatedAt) {
				latest = um
			}
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memMembershipRepo) FindByPaymentID(ctx context.Context, tx repository.Tx, paymentID string) (*model.UserMembership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, um := range m.store {
		if um.PaymentID == paymentID {
			cp := *um
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memMembershipRepo) ExpireAllActiveByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, um := range m.store {
		if um.UserID == userID && um.Status == model.MembershipStatusActive {
			um.Status = model.MembershipStatusExpired
			n++
		}
	}
	return n, nil
}

func (m *memMembershipRepo) ExpireAllPastDue(ctx context.Context, tx repository.Tx, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, um := range m.store {
		if um.Status == model.MembershipStatusActive && !um.ExpireDate.After(now) {
			um.Status = model.MembershipStatusExpired
			n++
		}
	}
	return n, nil
}

func (m *memMembershipRepo) all() []*model.UserMembership {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.UserMembership, 0, len(m.store))
	for _, um := range m.store {
		cp := *um
		out = append(out, &cp)
	}
	return out
}

type memTransactionRepo struct {
	mu    sync.Mutex
	store []*model.Transaction
}

func newMemTransactionRepo() *memTransactionRepo { return &memTransactionRepo{} }

func (m *memTransactionRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store = append(m.store, &cp)
	return nil
}

func (m *memTransactionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Transaction
	for _, t := range m.store {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTransactionRepo) CountByReference(ctx context.Context, tx repository.Tx, referenceID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.store {
		if t.ReferenceID == referenceID {
			n++
		}
	}
	return n, nil
}

func (m *memTransactionRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store)
}

// mockGateway simulates the provider. Counters let tests assert call volume.
type mockGateway struct {
	mu            sync.Mutex
	createCalls   int
	captureCalls  int
	createErr     error
	captureResult adapter.CaptureResult
	captureErr    error
	orderStatus   adapter.OrderStatus
	nextOrderID   string
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		captureResult: adapter.CaptureResult{Outcome: adapter.CaptureCompleted, CaptureID: "cap-1"},
		orderStatus:   adapter.OrderStatusApproved,
		nextOrderID:   "ord-1",
	}
}

func (g *mockGateway) Name() string { return "mock" }

func (g *mockGateway) CreateOrder(ctx context.Context, amountVND int64, referenceID string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.createErr != nil {
		return "", "", g.createErr
	}
	return g.nextOrderID, "https://provider.example/approve/" + g.nextOrderID, nil
}

func (g *mockGateway) CaptureOrder(ctx context.Context, orderID string) (adapter.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captureCalls++
	if g.captureErr != nil {
		return adapter.CaptureResult{}, g.captureErr
	}
	return g.captureResult, nil
}

func (g *mockGateway) GetOrderStatus(ctx context.Context, orderID string) (adapter.OrderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orderStatus, nil
}

// mockTxManager serializes callbacks with a mutex, emulating the row-lock
// serialization the Postgres TxManager provides.
type mockTxManager struct {
	mu sync.Mutex
}

func newMockTxManager() *mockTxManager { return &mockTxManager{} }

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}
