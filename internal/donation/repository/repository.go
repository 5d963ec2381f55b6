package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/kvstore"
)

// Repository provides donation record persistence. Records are append-only;
// there is no update or delete.
type Repository interface {
	Save(ctx context.Context, rec *donation.Record) error
	ListAll(ctx context.Context) ([]*donation.Record, error)
}

// KVRepository stores donation records as JSON in an injected key-value
// store under the donation key scheme.
type KVRepository struct {
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Save(ctx context.Context, rec *donation.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode donation record: %w", err)
	}
	if err := r.store.Set(ctx, donation.Key(rec.UserID, rec.Timestamp), b); err != nil {
		return fmt.Errorf("store donation record: %w", err)
	}
	return nil
}

func (r *KVRepository) ListAll(ctx context.Context) ([]*donation.Record, error) {
	vals, err := r.store.GetByPrefix(ctx, donation.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan donation records: %w", err)
	}
	out := make([]*donation.Record, 0, len(vals))
	for _, v := range vals {
		var rec donation.Record
		if err := json.Unmarshal(v, &rec); err != nil {
			return nil, fmt.Errorf("decode donation record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, nil
}
