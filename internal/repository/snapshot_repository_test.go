package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/testutil"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

func newKey(t *testing.T) string {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	return k.Encode()
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	snap := treasury.DefaultSnapshot(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	for _, sealed := range []bool{false, true} {
		name := "plain"
		if sealed {
			name = "sealed"
		}
		t.Run(name, func(t *testing.T) {
			// Setup
			db := testutil.SetupTestDB(t)
			store := repository.NewSQLiteStore(db)
			var sealer *repository.Sealer
			if sealed {
				var err error
				sealer, err = repository.NewSealer(newKey(t))
				require.NoError(t, err)
			}
			repo := repository.NewSnapshotRepository(store, sealer)

			// Execute
			require.NoError(t, repo.Save(context.Background(), snap))
			fields, err := repo.LoadRaw(context.Background())

			// Assert
			require.NoError(t, err)
			var assets []model.Asset
			require.NoError(t, json.Unmarshal(fields["assets"], &assets))
			assert.Equal(t, snap.Assets, assets)

			raw, err := store.Get(context.Background(), repository.SnapshotKey)
			require.NoError(t, err)
			assert.Equal(t, !sealed, json.Valid(raw))
		})
	}
}

func TestSnapshotRepository_LoadFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		repo := repository.NewSnapshotRepository(repository.NewSQLiteStore(testutil.SetupTestDB(t)), nil)
		_, err := repo.LoadRaw(ctx)
		assert.ErrorIs(t, err, apperrors.ErrKeyNotFound)
	})

	t.Run("corrupt json", func(t *testing.T) {
		store := repository.NewSQLiteStore(testutil.SetupTestDB(t))
		require.NoError(t, store.Put(ctx, repository.SnapshotKey, []byte("{not json")))

		_, err := repository.NewSnapshotRepository(store, nil).LoadRaw(ctx)
		assert.ErrorIs(t, err, apperrors.ErrCorruptSnapshot)
	})

	t.Run("wrong key", func(t *testing.T) {
		store := repository.NewSQLiteStore(testutil.SetupTestDB(t))
		writer, err := repository.NewSealer(newKey(t))
		require.NoError(t, err)
		reader, err := repository.NewSealer(newKey(t))
		require.NoError(t, err)

		require.NoError(t, repository.NewSnapshotRepository(store, writer).Save(ctx, model.Snapshot{}))

		_, err = repository.NewSnapshotRepository(store, reader).LoadRaw(ctx)
		assert.ErrorIs(t, err, apperrors.ErrCorruptSnapshot)
	})
}

func TestNewSealerRejectsBadKey(t *testing.T) {
	_, err := repository.NewSealer("too-short")
	assert.Error(t, err)
}
