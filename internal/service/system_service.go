package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/database"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/version"
)

// Features reports which optional integrations are configured and where snapshots live.
type Features struct {
	StoreDriver     string
	WalletSync      bool
	OpenAISentiment bool
	CoinGecko       bool
	Scheduler       bool
	SealedSnapshots bool
}

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	store    *Store
	features Features
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, store *Store, features Features) *SystemService {
	return &SystemService{
		db:       db,
		store:    store,
		features: features,
	}
}

// CheckHealth checks the database and the snapshot store.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	if err := database.HealthCheck(s.db); err != nil {
		return err
	}
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("snapshot store unreachable: %w", err)
	}
	return nil
}

// CheckVersion returns the application version, the applied migration version and the
// enabled features.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.Version(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Store:      s.features.StoreDriver,
		Features: map[string]bool{
			"wallet_sync":      s.features.WalletSync,
			"openai_sentiment": s.features.OpenAISentiment,
			"coingecko_prices": s.features.CoinGecko,
			"scheduler":        s.features.Scheduler,
			"sealed_snapshots": s.features.SealedSnapshots,
		},
	}, nil
}
