package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/config"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/scheduler"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/testutil"
)

var everyMinute = config.SchedulerConfig{Enabled: true, Market: "@every 1m", Analytics: "@every 1m", Wallet: "@every 1m"}

func jobsFor(svcs *testutil.Services) scheduler.Jobs {
	return scheduler.Jobs{Market: svcs.Intelligence, Analytics: svcs.Analytics, Wallet: svcs.Wallet}
}

func TestNew(t *testing.T) {
	svcs := testutil.NewTestServices(t, testutil.SetupTestDB(t), nil)

	t.Run("registers every job", func(t *testing.T) {
		s, err := scheduler.New(everyMinute, jobsFor(svcs))
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
	})

	t.Run("skips missing jobs and empty specs", func(t *testing.T) {
		cfg := everyMinute
		cfg.Wallet = ""
		s, err := scheduler.New(cfg, scheduler.Jobs{Market: svcs.Intelligence, Wallet: svcs.Wallet})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("rejects an invalid spec", func(t *testing.T) {
		cfg := everyMinute
		cfg.Analytics = "every now and then"
		_, err := scheduler.New(cfg, jobsFor(svcs))
		assert.ErrorContains(t, err, "invalid analytics schedule")
	})
}

func TestRunNow(t *testing.T) {
	t.Run("refreshes and tags the activity log", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db, nil)
		s, err := scheduler.New(everyMinute, jobsFor(svcs))
		require.NoError(t, err)

		// No wallet is connected; the sync job has nothing to do.
		require.NoError(t, s.RunNow(context.Background()))

		assert.Len(t, svcs.Analytics.Get().Forecasts, 3)
		logs := testutil.ActivityLogs(t, db)
		entry, ok := testutil.FindLog(logs, model.LogCategoryIntelligence, "Market intelligence refreshed")
		require.True(t, ok)
		assert.Equal(t, scheduler.Source, entry.Source)
		_, ok = testutil.FindLog(logs, model.LogCategoryAnalytics, "Analytics recomputed")
		assert.True(t, ok)
	})

	t.Run("wallet failure stops the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		rpcErr := errors.New("rpc down")
		reader := &testutil.FakeBalanceReader{Assets: map[int64][]model.Asset{1: nil}, Err: rpcErr}
		svcs := testutil.NewTestServices(t, db, reader)
		connected := true
		_, err := svcs.Wallet.SetConnection(context.Background(), request.SetWalletConnectionRequest{
			Connected: &connected,
			Address:   testutil.TestWalletAddress,
			ChainID:   1,
		})
		require.NoError(t, err)

		s, err := scheduler.New(everyMinute, jobsFor(svcs))
		require.NoError(t, err)

		err = s.RunNow(context.Background())
		assert.ErrorIs(t, err, rpcErr)
		assert.Empty(t, svcs.Analytics.Get().Forecasts)
	})
}

func TestStartStop(t *testing.T) {
	svcs := testutil.NewTestServices(t, testutil.SetupTestDB(t), nil)
	s, err := scheduler.New(everyMinute, jobsFor(svcs))
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
