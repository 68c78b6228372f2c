package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// ConfigService handles the agent configuration, the policy thresholds and the target
// allocation.
type ConfigService struct {
	store *Store
}

// NewConfigService creates a new ConfigService backed by store.
func NewConfigService(store *Store) *ConfigService {
	return &ConfigService{store: store}
}

// GetAgentConfig returns the agent configuration.
func (s *ConfigService) GetAgentConfig() model.AgentConfig {
	return Read(s.store, func(snap model.Snapshot) model.AgentConfig { return snap.AgentConfig })
}

// UpdateAgentConfig applies the fields present in req.
func (s *ConfigService) UpdateAgentConfig(ctx context.Context, req request.UpdateAgentConfigRequest) (model.AgentConfig, error) {
	op := &Op{Command: "setAgentConfig", Category: model.LogCategoryConfig, Message: "Agent configuration updated"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		cfg := snap.AgentConfig
		if req.RiskTolerance != nil {
			cfg.RiskTolerance = *req.RiskTolerance
		}
		if req.EnableStableReserve != nil {
			cfg.EnableStableReserve = *req.EnableStableReserve
		}
		if req.EnableMomentum != nil {
			cfg.EnableMomentum = *req.EnableMomentum
		}
		if req.EnableMLOptimization != nil {
			cfg.EnableMLOptimization = *req.EnableMLOptimization
		}
		if req.EnableMarketSentiment != nil {
			cfg.EnableMarketSentiment = *req.EnableMarketSentiment
		}
		if req.EnableGovernanceMode != nil {
			cfg.EnableGovernanceMode = *req.EnableGovernanceMode
		}
		if req.RebalanceThreshold != nil {
			cfg.RebalanceThreshold = *req.RebalanceThreshold
		}
		if req.MaxDrawdownLimit != nil {
			cfg.MaxDrawdownLimit = *req.MaxDrawdownLimit
		}
		op.Details = fmt.Sprintf("riskTolerance=%d", cfg.RiskTolerance)
		return treasury.SetAgentConfig(snap, cfg), nil
	})
	return snap.AgentConfig, err
}

// GetPolicyConfig returns the policy thresholds.
func (s *ConfigService) GetPolicyConfig() model.PolicyConfig {
	return Read(s.store, func(snap model.Snapshot) model.PolicyConfig { return snap.PolicyConfig })
}

// UpdatePolicyConfig applies the thresholds present in req.
func (s *ConfigService) UpdatePolicyConfig(ctx context.Context, req request.UpdatePolicyConfigRequest) (model.PolicyConfig, error) {
	op := &Op{Command: "setPolicyConfig", Category: model.LogCategoryConfig, Message: "Policy configuration updated"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		cfg := snap.PolicyConfig
		if req.MinStableReservePct != nil {
			cfg.MinStableReservePct = *req.MinStableReservePct
		}
		if req.MaxSingleAssetPct != nil {
			cfg.MaxSingleAssetPct = *req.MaxSingleAssetPct
		}
		op.Details = fmt.Sprintf("minStableReservePct=%g maxSingleAssetPct=%g", cfg.MinStableReservePct, cfg.MaxSingleAssetPct)
		return treasury.SetPolicyConfig(snap, cfg), nil
	})
	return snap.PolicyConfig, err
}

// GetTargetAllocation returns the target weights.
func (s *ConfigService) GetTargetAllocation() map[string]float64 {
	return Read(s.store, func(snap model.Snapshot) map[string]float64 { return maps.Clone(snap.TargetAllocation) })
}

// SetTargetAllocation replaces the target weights.
func (s *ConfigService) SetTargetAllocation(ctx context.Context, req request.SetTargetAllocationRequest) (map[string]float64, error) {
	op := &Op{
		Command:  "setTargetAllocation",
		Category: model.LogCategoryConfig,
		Message:  fmt.Sprintf("Target allocation set for %d assets", len(req)),
	}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		return treasury.SetTargetAllocation(snap, req), nil
	})
	return snap.TargetAllocation, err
}

// ExportConfig returns the configuration document as indented JSON.
func (s *ConfigService) ExportConfig() ([]byte, error) {
	data, err := treasury.ExportConfig(s.store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToExportConfig, err)
	}
	return data, nil
}

// ImportConfig applies a configuration document. Malformed input is logged and reported as
// not imported without touching the state; the error return is reserved for persistence.
func (s *ConfigService) ImportConfig(ctx context.Context, data []byte) (bool, error) {
	var invalid error
	op := &Op{Command: "importConfig", Category: model.LogCategoryConfig, Message: "Configuration imported"}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next, err := treasury.ImportConfig(snap, data)
		if err != nil {
			invalid = err
			return snap, err
		}
		return next, nil
	})
	if invalid != nil {
		slog.Warn("Invalid config JSON", "error", invalid)
		s.store.audit.Record(ctx, model.LogLevelWarning, model.LogCategoryConfig, "Invalid config JSON", invalid.Error())
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, nil
}

// GetSuggestions returns the agent hints.
func (s *ConfigService) GetSuggestions() []string {
	return Read(s.store, func(snap model.Snapshot) []string { return append([]string{}, snap.AgentSuggestions...) })
}

// RefreshSuggestions regenerates the agent hints from the agent configuration.
func (s *ConfigService) RefreshSuggestions(ctx context.Context) ([]string, error) {
	op := &Op{Command: "refreshSuggestions", Category: model.LogCategoryConfig, Message: "Agent suggestions refreshed"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		return treasury.RefreshSuggestions(snap), nil
	})
	return snap.AgentSuggestions, err
}
