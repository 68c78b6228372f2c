package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/config"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/database"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/events"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/logging"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/scheduler"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/sentiment"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/version"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/wallet"
)

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	// Open database connection. The log table always lives in SQLite.
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fatal("Failed to open database", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		fatal("Failed to migrate database", err)
	}
	slog.Info("Connected to database", "path", cfg.Database.Path)

	kv, closeKV, err := openKVStore(ctx, cfg.Store, db)
	if err != nil {
		fatal("Failed to open snapshot store", err)
	}
	defer closeKV()

	var sealer *repository.Sealer
	if cfg.Store.EncryptionKey != "" {
		if sealer, err = repository.NewSealer(cfg.Store.EncryptionKey); err != nil {
			fatal("Failed to load snapshot key", err)
		}
	}

	var signals treasury.SignalProvider = treasury.NewRandomSignals(uint64(time.Now().UnixNano()))
	if cfg.OpenAI.APIKey != "" {
		signals = sentiment.NewProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, signals)
		slog.Info("Market sentiment from OpenAI", "model", cfg.OpenAI.Model)
	}

	audit := service.NewActivityLog(repository.NewLogRepository(db), "api")
	store := service.NewStore(ctx, repository.NewSnapshotRepository(kv, sealer), treasury.NewEngine(signals), audit)

	reader, closeChains, err := openWalletReader(ctx, cfg.Chain)
	if err != nil {
		fatal("Failed to connect to chain RPC", err)
	}
	defer closeChains()

	features := service.Features{
		StoreDriver:     cfg.Store.Driver,
		WalletSync:      len(cfg.Chain.RPCURLs) > 0,
		OpenAISentiment: cfg.OpenAI.APIKey != "",
		CoinGecko:       cfg.Chain.PriceSource == config.PriceSourceCoinGecko,
		Scheduler:       cfg.Scheduler.Enabled,
		SealedSnapshots: sealer != nil,
	}

	// Create services
	var balanceReader service.BalanceReader
	if reader != nil {
		balanceReader = reader
	}
	marketService := service.NewIntelligenceService(store)
	analyticsService := service.NewAnalyticsService(store)
	walletService := service.NewWalletService(store, balanceReader)

	hub := events.NewHub(cfg.CORS.AllowedOrigins)
	unsubscribe := store.Subscribe(hub.Broadcast)
	defer unsubscribe()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, scheduler.Jobs{
			Market:    marketService,
			Analytics: analyticsService,
			Wallet:    walletService,
		})
		if err != nil {
			fatal("Failed to configure scheduler", err)
		}
		sched.Start()
		slog.Info("Scheduler started", "jobs", sched.Len())
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:       service.NewSystemService(db, store, features),
		Portfolio:    service.NewPortfolioService(store),
		Config:       service.NewConfigService(store),
		Policy:       service.NewPolicyService(store),
		Analytics:    analyticsService,
		Scenario:     service.NewScenarioService(store),
		Intelligence: marketService,
		Governance:   service.NewGovernanceService(store),
		Wallet:       walletService,
		Session:      service.NewSessionService(store),
		Developer:    service.NewDeveloperService(repository.NewLogRepository(db)),
		Events:       hub,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "addr", cfg.Server.Addr, "version", version.Version, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed to start", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			slog.Warn("Scheduler did not stop cleanly", "error", err)
		}
	}
	hub.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited")
}

// openKVStore returns the byte store selected by cfg.Driver and a func releasing it.
func openKVStore(ctx context.Context, cfg config.StoreConfig, db *sql.DB) (repository.KVStore, func(), error) {
	switch cfg.Driver {
	case config.DriverRedis:
		rs, err := repository.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case config.DriverPostgres:
		ps, err := repository.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return ps, ps.Close, nil
	default:
		return repository.NewSQLiteStore(db), func() {}, nil
	}
}

// openWalletReader dials the configured chains. Without RPC URLs it returns a nil reader
// and wallet sync stays disabled.
func openWalletReader(ctx context.Context, cfg config.ChainConfig) (*wallet.Reader, func(), error) {
	if len(cfg.RPCURLs) == 0 {
		return nil, func() {}, nil
	}

	clients, closeAll, err := wallet.DialClients(ctx, cfg.RPCURLs)
	if err != nil {
		return nil, nil, err
	}

	var prices wallet.PriceSource = wallet.DefaultStaticPrices()
	if cfg.PriceSource == config.PriceSourceCoinGecko {
		prices = wallet.NewCoinGeckoPrices(cfg.CoinGeckoBaseURL, &http.Client{Timeout: 10 * time.Second})
	}

	reader, err := wallet.NewReader(clients, prices, cfg.RPS)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return reader, closeAll, nil
}
