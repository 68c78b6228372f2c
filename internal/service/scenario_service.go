package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// ScenarioService manages the stress scenario.
type ScenarioService struct {
	store *Store
}

// NewScenarioService creates a new ScenarioService backed by store.
func NewScenarioService(store *Store) *ScenarioService {
	return &ScenarioService{store: store}
}

// ScenarioState is the scenario configuration with its last result, if any.
type ScenarioState struct {
	Config model.ScenarioConfig  `json:"config"`
	Result *model.ScenarioResult `json:"result"`
}

// Get returns the scenario configuration and the last result.
func (s *ScenarioService) Get() ScenarioState {
	snap := s.store.Snapshot()
	return ScenarioState{Config: snap.Scenario, Result: snap.ScenarioResult}
}

// Update applies the fields present in req.
func (s *ScenarioService) Update(ctx context.Context, req request.UpdateScenarioRequest) (model.ScenarioConfig, error) {
	op := &Op{Command: "setScenario", Category: model.LogCategoryScenario, Message: "Scenario updated"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		cfg := snap.Scenario
		if req.AssetDropPct != nil {
			cfg.AssetDropPct = *req.AssetDropPct
		}
		if req.ExpenseRisePct != nil {
			cfg.ExpenseRisePct = *req.ExpenseRisePct
		}
		op.Details = fmt.Sprintf("assetDropPct=%g expenseRisePct=%g", cfg.AssetDropPct, cfg.ExpenseRisePct)
		return treasury.SetScenario(snap, cfg), nil
	})
	return snap.Scenario, err
}

// Run evaluates the current scenario and stores the result.
func (s *ScenarioService) Run(ctx context.Context) (model.ScenarioResult, error) {
	op := &Op{Command: "runScenario", Category: model.LogCategoryScenario, Message: "Scenario run"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := s.store.Engine().RunScenario(snap)
		op.Details = fmt.Sprintf("projectedAUM=%.2f", next.ScenarioResult.ProjectedAUM)
		return next, nil
	})
	if snap.ScenarioResult == nil {
		return model.ScenarioResult{}, err
	}
	return *snap.ScenarioResult, err
}
