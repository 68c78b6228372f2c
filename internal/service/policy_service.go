package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// PolicyService runs the rebalancing policy and exposes its decision log.
type PolicyService struct {
	store *Store
}

// NewPolicyService creates a new PolicyService backed by store.
func NewPolicyService(store *Store) *PolicyService {
	return &PolicyService{store: store}
}

// Run evaluates the policy against the current state and records the decision.
func (s *PolicyService) Run(ctx context.Context) (model.PolicyDecision, error) {
	var decision model.PolicyDecision
	op := &Op{Command: "runPolicy", Category: model.LogCategoryPolicy}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		var next model.Snapshot
		next, decision = s.store.Engine().RunPolicy(snap)
		op.Message = decision.Summary
		op.Details = fmt.Sprintf("decision=%s actions=%d riskScore=%g", decision.ID, len(decision.Actions), decision.RiskScore)
		return next, nil
	})
	return decision, err
}

// GetLog returns the decision log, newest first.
func (s *PolicyService) GetLog() []model.PolicyDecision {
	return s.store.Snapshot().PolicyLog
}
