package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/testutil"
)

func putRawSnapshot(t *testing.T, store *repository.SQLiteStore, blob string) {
	t.Helper()
	if err := store.Put(context.Background(), repository.SnapshotKey, []byte(blob)); err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}
}

// TestStore_Load tests how the store initializes from the snapshot repository.
//
// WHY: Whatever is persisted, the service must start. Missing keys fall back to the
// defaults one by one and anything unreadable falls back to the defaults as a whole.
func TestStore_Load(t *testing.T) {
	t.Run("starts from defaults when nothing is stored", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)

		// Execute
		store := testutil.NewTestStore(t, db)

		// Assert
		snap := store.Snapshot()
		if len(snap.Assets) != 4 {
			t.Errorf("Expected 4 default assets, got %d", len(snap.Assets))
		}
		if snap.KPIs.TotalAUM != 500000 {
			t.Errorf("Expected default AUM 500000, got %v", snap.KPIs.TotalAUM)
		}
		if len(snap.NavHistory) != 30 {
			t.Errorf("Expected 30 NAV points, got %d", len(snap.NavHistory))
		}
	})

	t.Run("overlays persisted keys on the defaults", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		putRawSnapshot(t, repository.NewSQLiteStore(db),
			`{"policyConfig":{"minStableReservePct":33,"maxSingleAssetPct":50},"assets":null,"somethingElse":42}`)

		// Execute
		snap := testutil.NewTestStore(t, db).Snapshot()

		// Assert
		if snap.PolicyConfig.MinStableReservePct != 33 || snap.PolicyConfig.MaxSingleAssetPct != 50 {
			t.Errorf("Expected persisted policy config, got %+v", snap.PolicyConfig)
		}
		if len(snap.Assets) != 4 {
			t.Errorf("Expected null assets to fall back to defaults, got %d", len(snap.Assets))
		}
		if snap.AgentConfig.RiskTolerance != 6 {
			t.Errorf("Expected default agent config, got %+v", snap.AgentConfig)
		}
	})

	t.Run("falls back to defaults on corrupt json", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		putRawSnapshot(t, repository.NewSQLiteStore(db), `{"assets":[`)

		snap := testutil.NewTestStore(t, db).Snapshot()

		if snap.KPIs.TotalAUM != 500000 {
			t.Errorf("Expected defaults, got AUM %v", snap.KPIs.TotalAUM)
		}
	})

	t.Run("falls back to defaults on a mistyped key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		putRawSnapshot(t, repository.NewSQLiteStore(db), `{"assets":"lots","kpis":{"totalAUM":1}}`)

		snap := testutil.NewTestStore(t, db).Snapshot()

		if snap.KPIs.TotalAUM != 500000 {
			t.Errorf("Expected defaults, got AUM %v", snap.KPIs.TotalAUM)
		}
	})

	t.Run("falls back to defaults when the repository fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		store := testutil.NewTestStoreWithRepo(t, db, testutil.FailingSnapshotRepository{})

		if len(store.Snapshot().Assets) != 4 {
			t.Error("Expected default assets")
		}
	})
}

// TestStore_Update tests the command path: compute, persist, audit and notify.
//
// WHY: Every mutation must be durable before it returns, so a restart reloads exactly
// what callers were told.
func TestStore_Update(t *testing.T) {
	t.Run("persists the new snapshot", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		// Execute
		if _, err := svc.Rebalance(context.Background()); err != nil {
			t.Fatalf("Rebalance() returned unexpected error: %v", err)
		}

		// Assert
		reloaded := testutil.NewTestStore(t, db).Snapshot()
		if reloaded.LastRebalance != testutil.FixedNow.UnixMilli() {
			t.Errorf("Expected lastRebalance to be persisted, got %d", reloaded.LastRebalance)
		}
		for _, a := range reloaded.Assets {
			if a.Symbol == "ETH" && a.ValueUSD != 200000 {
				t.Errorf("Expected persisted ETH value 200000, got %v", a.ValueUSD)
			}
		}
	})

	t.Run("returns persistence failures and still advances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewTestStoreWithRepo(t, db, testutil.FailingSnapshotRepository{})
		svc := service.NewPortfolioService(store)

		_, err := svc.Rebalance(context.Background())

		if !errors.Is(err, apperrors.ErrFailedToPersistState) {
			t.Fatalf("Expected ErrFailedToPersistState, got %v", err)
		}
		if !errors.Is(err, testutil.ErrStoreDown) {
			t.Errorf("Expected the cause to be wrapped, got %v", err)
		}
		if store.Snapshot().LastRebalance == 0 {
			t.Error("Expected in-memory state to advance")
		}
		entry, ok := testutil.FindLog(testutil.ActivityLogs(t, db), model.LogCategoryPortfolio, "simulateRebalance not persisted")
		if !ok || entry.Level != string(model.LogLevelError) {
			t.Errorf("Expected an error entry in the activity log, got %+v", entry)
		}
	})

	t.Run("persists even when the caller has gone away", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewConfigService(testutil.NewTestStore(t, db))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		risk := 9
		if _, err := svc.UpdateAgentConfig(ctx, request.UpdateAgentConfigRequest{RiskTolerance: &risk}); err != nil {
			t.Fatalf("UpdateAgentConfig() returned unexpected error: %v", err)
		}

		reloaded := testutil.NewTestStore(t, db).Snapshot()
		if reloaded.AgentConfig.RiskTolerance != 9 {
			t.Errorf("Expected persisted riskTolerance 9, got %d", reloaded.AgentConfig.RiskTolerance)
		}
	})

	t.Run("failed mutation leaves state untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewTestStore(t, db)
		before := store.Snapshot()

		_, err := store.Update(context.Background(), &service.Op{Command: "noop"}, func(model.Snapshot) (model.Snapshot, error) {
			return model.Snapshot{}, errors.New("nope")
		})

		if err == nil {
			t.Fatal("Expected error")
		}
		if len(store.Snapshot().Assets) != len(before.Assets) {
			t.Error("Expected state to be unchanged")
		}
		if n := len(testutil.ActivityLogs(t, db)); n != 0 {
			t.Errorf("Expected no activity entries, got %d", n)
		}
	})

	t.Run("writes the activity log with the context source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db, nil)
		ctx := service.WithSource(context.Background(), "scheduler")

		if _, err := svc.Analytics.Compute(ctx); err != nil {
			t.Fatalf("Compute() returned unexpected error: %v", err)
		}
		if _, err := svc.Policy.Run(context.Background()); err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}

		logs := testutil.ActivityLogs(t, db)
		if len(logs) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(logs))
		}
		analytics, ok := testutil.FindLog(logs, model.LogCategoryAnalytics, "Analytics recomputed")
		if !ok {
			t.Fatal("Expected analytics entry")
		}
		if analytics.Source != "scheduler" {
			t.Errorf("Expected source scheduler, got %q", analytics.Source)
		}
		policy, ok := testutil.FindLog(logs, model.LogCategoryPolicy, "AI Analysis: Portfolio optimally positioned")
		if !ok {
			t.Fatal("Expected policy entry")
		}
		if policy.Source != "test" {
			t.Errorf("Expected default source, got %q", policy.Source)
		}
	})
}

// TestStore_Subscribe tests change notifications.
func TestStore_Subscribe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db, nil)

	var events []model.ChangeEvent
	unsubscribe := svc.Store.Subscribe(func(ev model.ChangeEvent) { events = append(events, ev) })

	if _, err := svc.Config.RefreshSuggestions(context.Background()); err != nil {
		t.Fatalf("RefreshSuggestions() returned unexpected error: %v", err)
	}
	unsubscribe()
	if _, err := svc.Config.RefreshSuggestions(context.Background()); err != nil {
		t.Fatalf("RefreshSuggestions() returned unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Command != "refreshSuggestions" || events[0].Timestamp != testutil.FixedNow.UnixMilli() {
		t.Errorf("Unexpected event %+v", events[0])
	}
}

// TestStore_ConcurrentCommands tests that commands from many goroutines are serialized.
//
// WHY: HTTP handlers, cron jobs and the CLI share one store. Lost updates would silently
// drop votes.
func TestStore_ConcurrentCommands(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db, nil)
	ctx := context.Background()

	p, err := svc.Governance.CreateProposal(ctx, request.CreateProposalRequest{
		Title: testutil.MakeProposalTitle("Concurrency"),
		Type:  string(model.ProposalRebalance),
	})
	if err != nil {
		t.Fatalf("CreateProposal() returned unexpected error: %v", err)
	}

	const voters = 25
	power := 2.0
	var wg sync.WaitGroup
	for range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Governance.Vote(ctx, p.ID, request.VoteRequest{Choice: "for", Power: &power}); err != nil {
				t.Errorf("Vote() returned unexpected error: %v", err)
			}
			_ = svc.Portfolio.GetKPIs()
		}()
	}
	wg.Wait()

	got := svc.Governance.ListProposals()[0]
	if got.Votes.For != voters*power {
		t.Errorf("Expected %v votes for, got %v", voters*power, got.Votes.For)
	}
	if got.Status != model.ProposalActive {
		t.Errorf("Expected ACTIVE, got %s", got.Status)
	}
}
