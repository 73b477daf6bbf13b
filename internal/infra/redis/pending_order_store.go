package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/model"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/domain/ports/repository"
)

var _ repository.PendingOrderStore = (*PendingOrderStore)(nil)

// PendingOrderStore keeps at most one in-flight order record per user in
// Redis, so the attempt survives an app restart between order creation and
// resolution. The TTL mirrors the 24-hour staleness rule; callers still
// check IsStale explicitly since the TTL is hygiene, not correctness.
type PendingOrderStore struct {
	client Client
}

func NewPendingOrderStore(client Client) *PendingOrderStore {
	return &PendingOrderStore{client: client}
}

func (s *PendingOrderStore) key(userID string) string {
	return fmt.Sprintf("pending_order:%s", userID)
}

func (s *PendingOrderStore) Put(ctx context.Context, rec *model.PendingOrderRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(rec.UserID), data, model.PendingOrderMaxAge)
}

// Get returns (nil, nil) when no record exists for the user.
func (s *PendingOrderStore) Get(ctx context.Context, userID string) (*model.PendingOrderRecord, error) {
	data, err := s.client.Get(ctx, s.key(userID))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var rec model.PendingOrderRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PendingOrderStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID))
}
