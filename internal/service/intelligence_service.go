package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// IntelligenceService refreshes and serves the market intelligence and the advisory lists
// derived from the wallet holdings.
type IntelligenceService struct {
	store *Store
}

// NewIntelligenceService creates a new IntelligenceService backed by store.
func NewIntelligenceService(store *Store) *IntelligenceService {
	return &IntelligenceService{store: store}
}

// GetMarket returns the current market intelligence.
func (s *IntelligenceService) GetMarket() model.MarketIntelligence {
	return s.store.Snapshot().MarketIntelligence
}

// RefreshMarket draws fresh market signals. The signal provider may call out over the
// network, so it runs before the write lock is taken.
func (s *IntelligenceService) RefreshMarket(ctx context.Context) (model.MarketIntelligence, error) {
	mi := s.store.Engine().GenerateMarketIntelligence(ctx)
	op := &Op{
		Command:  "updateMarketIntelligence",
		Category: model.LogCategoryIntelligence,
		Message:  "Market intelligence refreshed",
		Details:  fmt.Sprintf("sentiment=%.1f fearGreed=%.1f", mi.Sentiment, mi.FearGreedIndex),
	}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := snap.Clone()
		next.MarketIntelligence = mi
		return next, nil
	})
	return snap.MarketIntelligence, err
}

// GenerateInsights regenerates the AI insights.
func (s *IntelligenceService) GenerateInsights(ctx context.Context) ([]model.AIInsight, error) {
	snap, err := s.generate(ctx, "generateAIInsights", s.store.Engine().GenerateAIInsights, func(n model.Snapshot) int { return len(n.AIInsights) })
	return snap.AIInsights, err
}

// GenerateNews regenerates the news list.
func (s *IntelligenceService) GenerateNews(ctx context.Context) ([]model.NewsItem, error) {
	snap, err := s.generate(ctx, "generateNews", s.store.Engine().GenerateNews, func(n model.Snapshot) int { return len(n.News) })
	return snap.News, err
}

// GenerateRecommendations regenerates the token recommendations.
func (s *IntelligenceService) GenerateRecommendations(ctx context.Context) ([]model.TokenRecommendation, error) {
	snap, err := s.generate(ctx, "generateTokenRecommendations", s.store.Engine().GenerateTokenRecommendations, func(n model.Snapshot) int { return len(n.TokenRecommendations) })
	return snap.TokenRecommendations, err
}

// GenerateTrends regenerates the market trends.
func (s *IntelligenceService) GenerateTrends(ctx context.Context) ([]model.MarketTrend, error) {
	snap, err := s.generate(ctx, "generateMarketTrends", s.store.Engine().GenerateMarketTrends, func(n model.Snapshot) int { return len(n.MarketTrends) })
	return snap.MarketTrends, err
}

// IntelligenceLists groups the four generated lists.
type IntelligenceLists struct {
	Insights        []model.AIInsight           `json:"insights"`
	News            []model.NewsItem            `json:"news"`
	Recommendations []model.TokenRecommendation `json:"recommendations"`
	Trends          []model.MarketTrend         `json:"trends"`
}

// RefreshAll regenerates all four lists in one command.
func (s *IntelligenceService) RefreshAll(ctx context.Context) (IntelligenceLists, error) {
	snap, err := s.generate(ctx, "refreshIntelligence", s.store.Engine().RefreshIntelligence, func(n model.Snapshot) int {
		return len(n.AIInsights) + len(n.News) + len(n.TokenRecommendations) + len(n.MarketTrends)
	})
	return listsOf(snap), err
}

// GetLists returns the four generated lists.
func (s *IntelligenceService) GetLists() IntelligenceLists {
	return listsOf(s.store.Snapshot())
}

func listsOf(snap model.Snapshot) IntelligenceLists {
	return IntelligenceLists{
		Insights:        snap.AIInsights,
		News:            snap.News,
		Recommendations: snap.TokenRecommendations,
		Trends:          snap.MarketTrends,
	}
}

func (s *IntelligenceService) generate(ctx context.Context, command string, gen func(model.Snapshot) model.Snapshot, count func(model.Snapshot) int) (model.Snapshot, error) {
	op := &Op{Command: command, Category: model.LogCategoryIntelligence}
	return s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := gen(snap)
		op.Message = fmt.Sprintf("%s produced %d items", command, count(next))
		return next, nil
	})
}
