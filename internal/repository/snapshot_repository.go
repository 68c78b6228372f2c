package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// SnapshotKey is the storage key of the persisted treasury state.
const SnapshotKey = "dao_treasury_state_v1"

// SnapshotRepository reads and writes the treasury snapshot as one JSON document,
// optionally sealed with fernet.
type SnapshotRepository struct {
	store  KVStore
	sealer *Sealer
}

// NewSnapshotRepository creates a SnapshotRepository. A nil sealer stores plain JSON.
func NewSnapshotRepository(store KVStore, sealer *Sealer) *SnapshotRepository {
	return &SnapshotRepository{store: store, sealer: sealer}
}

// LoadRaw returns the stored top-level JSON fields keyed by name, so callers can merge
// them over defaults. Returns apperrors.ErrKeyNotFound when nothing was saved yet and
// apperrors.ErrCorruptSnapshot when the blob cannot be unsealed or parsed.
func (r *SnapshotRepository) LoadRaw(ctx context.Context) (map[string]json.RawMessage, error) {
	blob, err := r.store.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, err
	}

	if r.sealer != nil {
		if blob, err = r.sealer.Open(blob); err != nil {
			return nil, err
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(blob, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptSnapshot, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: snapshot is null", apperrors.ErrCorruptSnapshot)
	}
	return fields, nil
}

// Save serializes and stores the snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, s model.Snapshot) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if r.sealer != nil {
		if blob, err = r.sealer.Seal(blob); err != nil {
			return err
		}
	}

	return r.store.Put(ctx, SnapshotKey, blob)
}

// Ping checks the backing store is reachable.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
