package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// SnapshotRepository persists the treasury snapshot.
type SnapshotRepository interface {
	LoadRaw(ctx context.Context) (map[string]json.RawMessage, error)
	Save(ctx context.Context, s model.Snapshot) error
	Ping(ctx context.Context) error
}

// Op describes a state command for the activity log and the change feed.
// A mutation may fill in Message and Details once it knows its outcome.
type Op struct {
	Command  string
	Category model.LogCategory
	Message  string
	Details  string
}

// Mutation computes the next snapshot from the current one. Returning an error leaves the
// state untouched.
type Mutation func(model.Snapshot) (model.Snapshot, error)

// Store owns the treasury snapshot. Commands are serialized by a write lock and the new
// snapshot is persisted before the command returns.
type Store struct {
	mu     sync.RWMutex
	snap   model.Snapshot
	repo   SnapshotRepository
	engine *treasury.Engine
	audit  *ActivityLog

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(model.ChangeEvent)
}

// NewStore builds the default snapshot, overlays whatever the repository holds and returns
// the resulting store. Load failures fall back to the defaults.
func NewStore(ctx context.Context, repo SnapshotRepository, engine *treasury.Engine, audit *ActivityLog) *Store {
	s := &Store{
		repo:        repo,
		engine:      engine,
		audit:       audit,
		subscribers: map[int]func(model.ChangeEvent){},
	}
	s.snap = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) model.Snapshot {
	defaults := treasury.DefaultSnapshot(s.engine.Now())

	raw, err := s.repo.LoadRaw(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrKeyNotFound) {
			slog.Info("no persisted snapshot, starting from defaults")
		} else {
			slog.Warn("failed to load snapshot, starting from defaults", "error", err)
		}
		return defaults
	}

	merged, err := mergeSnapshot(defaults, raw)
	if err != nil {
		slog.Warn("persisted snapshot does not match the state shape, starting from defaults", "error", err)
		return defaults
	}
	slog.Info("loaded persisted snapshot", "keys", len(raw))
	return merged
}

// mergeSnapshot overlays the persisted top-level keys onto base. Keys that are absent or null
// keep their default value.
func mergeSnapshot(base model.Snapshot, raw map[string]json.RawMessage) (model.Snapshot, error) {
	data, err := json.Marshal(base)
	if err != nil {
		return base, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return base, err
	}
	for k, v := range raw {
		if len(v) == 0 || string(v) == "null" {
			continue
		}
		fields[k] = v
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return base, err
	}
	var out model.Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("failed to decode merged snapshot: %w", err)
	}
	return out, nil
}

// Engine returns the rule engine the store's commands run against.
func (s *Store) Engine() *treasury.Engine {
	return s.engine
}

// Snapshot returns a copy of the latest committed snapshot.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Read calls fn with the current snapshot under the read lock.
func Read[T any](s *Store, fn func(model.Snapshot) T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.snap)
}

// Update applies fn under the write lock, persists the result and notifies subscribers.
// A persistence failure is returned wrapped in ErrFailedToPersistState; the in-memory state
// still advances and the next successful save catches up.
func (s *Store) Update(ctx context.Context, op *Op, fn Mutation) (model.Snapshot, error) {
	s.mu.Lock()
	next, err := fn(s.snap)
	if err != nil {
		s.mu.Unlock()
		return model.Snapshot{}, err
	}
	s.snap = next
	saveErr := s.repo.Save(context.WithoutCancel(ctx), next)
	out := next.Clone()
	s.mu.Unlock()

	if saveErr != nil {
		slog.Error("failed to persist snapshot", "command", op.Command, "error", saveErr)
		s.audit.Record(ctx, model.LogLevelError, op.Category, op.Command+" not persisted", saveErr.Error())
		return out, fmt.Errorf("%w: %w", apperrors.ErrFailedToPersistState, saveErr)
	}

	msg := op.Message
	if msg == "" {
		msg = op.Command
	}
	s.audit.Record(ctx, model.LogLevelInfo, op.Category, msg, op.Details)
	s.publish(model.ChangeEvent{Command: op.Command, Timestamp: s.engine.Now().UnixMilli()})
	return out, nil
}

// Subscribe registers fn for change events and returns a function that removes it.
// fn is called synchronously after each persisted command and must not block.
func (s *Store) Subscribe(fn func(model.ChangeEvent)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(ev model.ChangeEvent) {
	s.subMu.Lock()
	subs := make([]func(model.ChangeEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Ping checks that the snapshot repository is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
