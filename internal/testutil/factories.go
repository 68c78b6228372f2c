package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
)

// LogBuilder provides a fluent interface for creating activity log entries.
//
// Example usage:
//
//	// Simple creation with defaults
//	entry := testutil.NewLog().Build(t, db)
//
//	// Customized entry
//	entry := testutil.NewLog().
//	    WithLevel(model.LogLevelError).
//	    WithCategory(model.LogCategoryWallet).
//	    WithMessage("wallet sync failed").
//	    At(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type LogBuilder struct {
	Log model.Log
}

// NewLog creates a LogBuilder with sensible defaults.
func NewLog() *LogBuilder {
	return &LogBuilder{Log: model.Log{
		ID:        MakeID(),
		Timestamp: time.Now().UTC(),
		Level:     string(model.LogLevelInfo),
		Category:  string(model.LogCategorySystem),
		Message:   "test log entry",
		Source:    "testutil",
	}}
}

func (b *LogBuilder) WithLevel(level model.LogLevel) *LogBuilder {
	b.Log.Level = string(level)
	return b
}

func (b *LogBuilder) WithCategory(category model.LogCategory) *LogBuilder {
	b.Log.Category = string(category)
	return b
}

func (b *LogBuilder) WithMessage(message string) *LogBuilder {
	b.Log.Message = message
	return b
}

func (b *LogBuilder) WithSource(source string) *LogBuilder {
	b.Log.Source = source
	return b
}

// At sets the entry timestamp.
func (b *LogBuilder) At(ts time.Time) *LogBuilder {
	b.Log.Timestamp = ts.UTC()
	return b
}

// Build writes the entry to the database and returns it.
func (b *LogBuilder) Build(t *testing.T, db *sql.DB) model.Log {
	t.Helper()

	if err := repository.NewLogRepository(db).InsertLog(context.Background(), b.Log); err != nil {
		t.Fatalf("Failed to create test log: %v", err)
	}
	return b.Log
}

// CreateLogs writes count info entries one second apart, oldest first, starting at start.
func CreateLogs(t *testing.T, db *sql.DB, start time.Time, count int) []model.Log {
	t.Helper()

	logs := make([]model.Log, count)
	for i := range logs {
		logs[i] = NewLog().At(start.Add(time.Duration(i)*time.Second)).Build(t, db)
	}
	return logs
}

// WalletAsset builds a wallet holding with the given USD value.
func WalletAsset(symbol string, valueUSD float64) model.Asset {
	return model.Asset{Symbol: symbol, ValueUSD: valueUSD}
}

// ConnectedSnapshot returns snap with a connected wallet on real data holding assets.
func ConnectedSnapshot(snap model.Snapshot, chainID int64, assets ...model.Asset) model.Snapshot {
	snap.WalletConnected = true
	snap.UseRealData = true
	snap.WalletAddress = TestWalletAddress
	snap.WalletChainID = chainID
	snap.WalletAssets = assets
	return snap
}

// TestWalletAddress is a syntactically valid address used across tests.
const TestWalletAddress = "0x52908400098527886E0F7030069857D2E4169EE7"

// ActivityLogs returns every activity log entry in db, oldest first.
func ActivityLogs(t *testing.T, db *sql.DB) []model.Log {
	t.Helper()
	resp, err := repository.NewLogRepository(db).GetLogs(context.Background(), &model.LogFilters{SortDir: "asc", PerPage: 1000})
	if err != nil {
		t.Fatalf("Failed to read activity log: %v", err)
	}
	return resp.Logs
}

// FindLog returns the first entry with the given category and message.
func FindLog(logs []model.Log, category model.LogCategory, message string) (model.Log, bool) {
	for _, l := range logs {
		if l.Category == string(category) && l.Message == message {
			return l, true
		}
	}
	return model.Log{}, false
}
