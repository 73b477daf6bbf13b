//go:build !integration

package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
)

// --- stub payment API ---

type stubAPI struct {
	mu sync.Mutex

	createResult  *CreateOrderResult
	createErr     error
	captureResult *CaptureResult
	captureErr    error
	status        string
	statusErr     error

	captureCalls []string
	statusCalls  []string
}

func (s *stubAPI) CreateOrder(ctx context.Context, packageID string) (*CreateOrderResult, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createResult, nil
}

func (s *stubAPI) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	s.mu.Lock()
	s.captureCalls = append(s.captureCalls, orderID)
	s.mu.Unlock()
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	return s.captureResult, nil
}

func (s *stubAPI) OrderStatus(ctx context.Context, orderID string) (string, error) {
	s.mu.Lock()
	s.statusCalls = append(s.statusCalls, orderID)
	s.mu.Unlock()
	if s.statusErr != nil {
		return "", s.statusErr
	}
	return s.status, nil
}

func (s *stubAPI) captureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.captureCalls)
}

// --- in-memory pending order store ---

type memStore struct {
	mu   sync.Mutex
	recs map[string]*model.PendingOrderRecord
}

func newMemStore() *memStore {
	return &memStore{recs: map[string]*model.PendingOrderRecord{}}
}

func (m *memStore) Put(ctx context.Context, rec *model.PendingOrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.recs[rec.UserID] = &cp
	return nil
}

func (m *memStore) Get(ctx context.Context, userID string) (*model.PendingOrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, userID)
	return nil
}

// --- helpers ---

func testLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func activeMembership(orderID string) *CaptureResult {
	now := time.Now()
	return &CaptureResult{
		Membership: Membership{
			ID:          "mem-1",
			PackageID:   "pkg-premium",
			PaymentID:   "pay-1",
			Status:      "active",
			PaymentDate: now,
			ExpireDate:  now.Add(30 * 24 * time.Hour),
		},
		Payment: Payment{
			ID: "pay-1", PackageID: "pkg-premium", OrderID: orderID,
			Amount: 299000, Currency: "VND", Status: "success", PaymentDate: &now,
		},
	}
}

func pendingRecord(userID, orderID string, age time.Duration) *model.PendingOrderRecord {
	return &model.PendingOrderRecord{
		OrderID: orderID,
		UserID:  userID,
		Package: model.PackageSnapshot{
			ID: "pkg-premium", Name: "Premium 30", Price: 299000, DurationDays: 30,
		},
		CreatedAt: time.Now().Add(-age),
	}
}

func newTestSession(api *stubAPI, store *memStore) *Session {
	return NewSession("user-1", api, store, testLogger())
}
