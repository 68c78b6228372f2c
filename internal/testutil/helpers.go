package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// FixedNow is the clock used by NewTestEngine.
var FixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// NewTestEngine returns an engine with a fixed clock and deterministic signals:
// sentiment 25, fear/greed 45, zero momentum and a uniform draw of 0.5.
func NewTestEngine() *treasury.Engine {
	return treasury.NewEngine(treasury.StaticSignals{SentimentValue: 25, FearGreed: 45, Value: 0.5}).
		WithClock(func() time.Time { return FixedNow })
}

// NewTestSnapshotRepository returns a plain JSON snapshot repository over the kv_store table.
func NewTestSnapshotRepository(t *testing.T, db *sql.DB) *repository.SnapshotRepository {
	t.Helper()
	return repository.NewSnapshotRepository(repository.NewSQLiteStore(db), nil)
}

// NewTestStore returns a store persisting to db and writing its activity log there.
func NewTestStore(t *testing.T, db *sql.DB) *service.Store {
	t.Helper()
	return NewTestStoreWithRepo(t, db, NewTestSnapshotRepository(t, db))
}

// NewTestStoreWithRepo returns a store over repo that writes its activity log to db.
func NewTestStoreWithRepo(t *testing.T, db *sql.DB, repo service.SnapshotRepository) *service.Store {
	t.Helper()
	audit := service.NewActivityLog(repository.NewLogRepository(db), "test")
	return service.NewStore(context.Background(), repo, NewTestEngine(), audit)
}

// Services bundles every command service over one shared store.
type Services struct {
	Store        *service.Store
	Config       *service.ConfigService
	Portfolio    *service.PortfolioService
	Policy       *service.PolicyService
	Analytics    *service.AnalyticsService
	Scenario     *service.ScenarioService
	Intelligence *service.IntelligenceService
	Governance   *service.GovernanceService
	Wallet       *service.WalletService
	Session      *service.SessionService
	System       *service.SystemService
	Developer    *service.DeveloperService
}

// NewTestServices wires every service against db. reader may be nil.
func NewTestServices(t *testing.T, db *sql.DB, reader service.BalanceReader) *Services {
	t.Helper()
	store := NewTestStore(t, db)
	return &Services{
		Store:        store,
		Config:       service.NewConfigService(store),
		Portfolio:    service.NewPortfolioService(store),
		Policy:       service.NewPolicyService(store),
		Analytics:    service.NewAnalyticsService(store),
		Scenario:     service.NewScenarioService(store),
		Intelligence: service.NewIntelligenceService(store),
		Governance:   service.NewGovernanceService(store),
		Wallet:       service.NewWalletService(store, reader),
		Session:      service.NewSessionService(store),
		System:       service.NewSystemService(db, store, service.Features{}),
		Developer:    NewTestDeveloperService(t, db),
	}
}

func NewTestConfigService(t *testing.T, db *sql.DB) *service.ConfigService {
	t.Helper()
	return service.NewConfigService(NewTestStore(t, db))
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(NewTestStore(t, db))
}

func NewTestGovernanceService(t *testing.T, db *sql.DB) *service.GovernanceService {
	t.Helper()
	return service.NewGovernanceService(NewTestStore(t, db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, NewTestStore(t, db), service.Features{})
}

func NewTestDeveloperService(t *testing.T, db *sql.DB) *service.DeveloperService {
	t.Helper()
	return service.NewDeveloperService(repository.NewLogRepository(db))
}

// ErrStoreDown is returned by FailingSnapshotRepository.
var ErrStoreDown = errors.New("store down")

// FailingSnapshotRepository loads nothing and fails every save.
type FailingSnapshotRepository struct{}

func (FailingSnapshotRepository) LoadRaw(context.Context) (map[string]json.RawMessage, error) {
	return nil, ErrStoreDown
}

func (FailingSnapshotRepository) Save(context.Context, model.Snapshot) error { return ErrStoreDown }

func (FailingSnapshotRepository) Ping(context.Context) error { return ErrStoreDown }

// FakeBalanceReader returns fixed holdings for the chains it knows.
type FakeBalanceReader struct {
	mu     sync.Mutex
	Assets map[int64][]model.Asset
	Err    error
	Calls  int
}

func (f *FakeBalanceReader) SupportsChain(chainID int64) bool {
	_, ok := f.Assets[chainID]
	return ok
}

func (f *FakeBalanceReader) ReadAssets(_ context.Context, chainID int64, _ string) ([]model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]model.Asset{}, f.Assets[chainID]...), nil
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeProposalTitle generates a unique proposal title for testing.
//
// Example usage:
//
//	title := testutil.MakeProposalTitle("Raise stables")
//	// Returns: "Raise stables ABC123"
func MakeProposalTitle(base string) string {
	if base == "" {
		base = "Proposal"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
