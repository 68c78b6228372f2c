package treasury

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// SetAgentConfig replaces the agent configuration.
func SetAgentConfig(s model.Snapshot, cfg model.AgentConfig) model.Snapshot {
	next := s.Clone()
	next.AgentConfig = cfg
	return next
}

// SetPolicyConfig replaces the policy thresholds.
func SetPolicyConfig(s model.Snapshot, cfg model.PolicyConfig) model.Snapshot {
	next := s.Clone()
	next.PolicyConfig = cfg
	return next
}

// SetTargetAllocation replaces the target weights.
func SetTargetAllocation(s model.Snapshot, target map[string]float64) model.Snapshot {
	next := s.Clone()
	next.TargetAllocation = maps.Clone(target)
	return next
}

// ExportConfig serializes the agent config, policy config and target allocation as
// 2-space indented JSON.
func ExportConfig(s model.Snapshot) ([]byte, error) {
	agent, policy := s.AgentConfig, s.PolicyConfig
	doc := model.ConfigDocument{
		AgentConfig:      &agent,
		PolicyConfig:     &policy,
		TargetAllocation: s.TargetAllocation,
	}
	if doc.TargetAllocation == nil {
		doc.TargetAllocation = map[string]float64{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportConfig overwrites the sections present in data and leaves everything else alone.
// A section that is absent or null keeps its current value; fields missing from a present
// section keep their current values too. Malformed input returns an error and s unchanged.
func ImportConfig(s model.Snapshot, data []byte) (model.Snapshot, error) {
	var raw struct {
		AgentConfig      json.RawMessage `json:"agentConfig"`
		PolicyConfig     json.RawMessage `json:"policyConfig"`
		TargetAllocation json.RawMessage `json:"targetAllocation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("invalid config document: %w", err)
	}

	agent := s.AgentConfig
	if present(raw.AgentConfig) {
		if err := json.Unmarshal(raw.AgentConfig, &agent); err != nil {
			return s, fmt.Errorf("invalid agentConfig: %w", err)
		}
	}
	policy := s.PolicyConfig
	if present(raw.PolicyConfig) {
		if err := json.Unmarshal(raw.PolicyConfig, &policy); err != nil {
			return s, fmt.Errorf("invalid policyConfig: %w", err)
		}
	}
	target := s.TargetAllocation
	if present(raw.TargetAllocation) {
		target = map[string]float64{}
		if err := json.Unmarshal(raw.TargetAllocation, &target); err != nil {
			return s, fmt.Errorf("invalid targetAllocation: %w", err)
		}
	}

	next := s.Clone()
	next.AgentConfig = agent
	next.PolicyConfig = policy
	next.TargetAllocation = maps.Clone(target)
	return next, nil
}

func present(msg json.RawMessage) bool {
	return len(msg) > 0 && string(msg) != "null"
}

// Suggestions derives the agent hints from the configuration.
func Suggestions(cfg model.AgentConfig) []string {
	var out []string
	if cfg.EnableStableReserve {
		out = append(out, "Maintain ≥20% in stables as downside protection")
	}
	if cfg.EnableMomentum {
		out = append(out, "Overweight recent outperformers by +2% tilt")
	}
	out = append(out, fmt.Sprintf("Risk tolerance %d: adjust VOL target accordingly", cfg.RiskTolerance))
	return out
}

// RefreshSuggestions regenerates the agent hints.
func RefreshSuggestions(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.AgentSuggestions = Suggestions(s.AgentConfig)
	return next
}
