package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/middleware"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/config"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// Services are the dependencies the router hands to its handlers.
type Services struct {
	System       *service.SystemService
	Portfolio    *service.PortfolioService
	Config       *service.ConfigService
	Policy       *service.PolicyService
	Analytics    *service.AnalyticsService
	Scenario     *service.ScenarioService
	Intelligence *service.IntelligenceService
	Governance   *service.GovernanceService
	Wallet       *service.WalletService
	Session      *service.SessionService
	Developer    *service.DeveloperService
	// Events serves the websocket change feed. Nil leaves /api/events unrouted.
	Events http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.CORS(cfg.CORS.AllowedOrigins))

	limiter := custommiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		if svc.Events != nil {
			r.Handle("/events", svc.Events)
		}

		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)

			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/state", portfolioHandler.State)
			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/assets", portfolioHandler.Assets)
				r.Get("/kpis", portfolioHandler.KPIs)
				r.Get("/nav", portfolioHandler.Nav)
				r.Get("/transactions", portfolioHandler.Transactions)
				r.Get("/transactions/export", portfolioHandler.ExportTransactions)
				r.Post("/rebalance", portfolioHandler.Rebalance)
				r.Post("/optimize", portfolioHandler.Optimize)
			})

			r.Route("/config", func(r chi.Router) {
				configHandler := handlers.NewConfigHandler(svc.Config)
				r.Get("/agent", configHandler.GetAgent)
				r.Put("/agent", configHandler.UpdateAgent)
				r.Get("/policy", configHandler.GetPolicy)
				r.Put("/policy", configHandler.UpdatePolicy)
				r.Get("/target", configHandler.GetTarget)
				r.Put("/target", configHandler.SetTarget)
				r.Get("/export", configHandler.Export)
				r.Post("/import", configHandler.Import)
				r.Get("/suggestions", configHandler.Suggestions)
				r.Post("/suggestions/refresh", configHandler.RefreshSuggestions)
			})

			r.Route("/policy", func(r chi.Router) {
				policyHandler := handlers.NewPolicyHandler(svc.Policy)
				r.Post("/run", policyHandler.Run)
				r.Get("/log", policyHandler.Log)
			})

			r.Route("/analytics", func(r chi.Router) {
				analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
				r.Get("/", analyticsHandler.Get)
				r.Post("/compute", analyticsHandler.Compute)
			})

			r.Route("/scenario", func(r chi.Router) {
				scenarioHandler := handlers.NewScenarioHandler(svc.Scenario)
				r.Get("/", scenarioHandler.Get)
				r.Put("/", scenarioHandler.Update)
				r.Post("/run", scenarioHandler.Run)
			})

			r.Route("/intelligence", func(r chi.Router) {
				intelligenceHandler := handlers.NewIntelligenceHandler(svc.Intelligence)
				r.Get("/", intelligenceHandler.Lists)
				r.Post("/refresh", intelligenceHandler.RefreshAll)
				r.Get("/market", intelligenceHandler.Market)
				r.Post("/market/refresh", intelligenceHandler.RefreshMarket)
				r.Get("/insights", intelligenceHandler.Insights)
				r.Post("/insights", intelligenceHandler.GenerateInsights)
				r.Get("/news", intelligenceHandler.News)
				r.Post("/news", intelligenceHandler.GenerateNews)
				r.Get("/recommendations", intelligenceHandler.Recommendations)
				r.Post("/recommendations", intelligenceHandler.GenerateRecommendations)
				r.Get("/trends", intelligenceHandler.Trends)
				r.Post("/trends", intelligenceHandler.GenerateTrends)
			})

			r.Route("/governance/proposals", func(r chi.Router) {
				governanceHandler := handlers.NewGovernanceHandler(svc.Governance)
				r.Get("/", governanceHandler.List)
				r.Post("/", governanceHandler.Create)
				r.Route("/{proposalID}", func(r chi.Router) {
					r.Use(custommiddleware.RequireUUIDParam("proposalID"))
					r.Post("/vote", governanceHandler.Vote)
				})
			})

			r.Route("/wallet", func(r chi.Router) {
				walletHandler := handlers.NewWalletHandler(svc.Wallet)
				r.Get("/", walletHandler.Get)
				r.Put("/connection", walletHandler.SetConnection)
				r.Put("/assets", walletHandler.UpdateAssets)
				r.Post("/sync", walletHandler.Sync)
				r.Post("/data-source/toggle", walletHandler.ToggleDataSource)
			})

			r.Route("/session", func(r chi.Router) {
				sessionHandler := handlers.NewSessionHandler(svc.Session)
				r.Get("/", sessionHandler.Status)
				r.Post("/login", sessionHandler.Login)
				r.Post("/logout", sessionHandler.Logout)
			})
		})

		r.Route("/developer", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			developerHandler := handlers.NewDeveloperHandler(svc.Developer)
			r.Get("/logs", developerHandler.GetLogs)
		})
	})

	return r
}
