package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// GovernanceService handles proposals and votes.
type GovernanceService struct {
	store *Store
}

// NewGovernanceService creates a new GovernanceService backed by store.
func NewGovernanceService(store *Store) *GovernanceService {
	return &GovernanceService{store: store}
}

// ListProposals returns the proposals, newest first, with their status derived for now.
func (s *GovernanceService) ListProposals() []model.GovernanceProposal {
	return treasury.WithDerivedStatus(s.store.Snapshot().GovernanceProposals, s.store.Engine().Now())
}

// CreateProposal opens a new ACTIVE proposal.
func (s *GovernanceService) CreateProposal(ctx context.Context, req request.CreateProposalRequest) (model.GovernanceProposal, error) {
	draft := treasury.ProposalDraft{
		Title:           req.Title,
		Description:     req.Description,
		Type:            model.ProposalType(req.Type),
		ProposedChanges: req.ProposedChanges,
	}
	if req.VotingPower != nil {
		draft.VotingPower = *req.VotingPower
	}
	if req.Deadline != nil {
		draft.Deadline = *req.Deadline
	}

	var proposal model.GovernanceProposal
	op := &Op{Command: "createProposal", Category: model.LogCategoryGovernance}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		var next model.Snapshot
		next, proposal = s.store.Engine().CreateProposal(snap, draft)
		op.Message = fmt.Sprintf("Proposal created: %s", proposal.Title)
		op.Details = fmt.Sprintf("id=%s type=%s", proposal.ID, proposal.Type)
		return next, nil
	})
	return proposal, err
}

// Vote adds a vote to proposal id. Unknown ids return ErrProposalNotFound and proposals past
// their deadline return ErrProposalClosed.
func (s *GovernanceService) Vote(ctx context.Context, id string, req request.VoteRequest) (model.GovernanceProposal, error) {
	power := float64(treasury.DefaultVotePower)
	if req.Power != nil {
		power = *req.Power
	}

	var proposal model.GovernanceProposal
	op := &Op{Command: "vote", Category: model.LogCategoryGovernance}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next, p, err := s.store.Engine().Vote(snap, id, model.VoteChoice(req.Choice), power)
		if err != nil {
			return snap, err
		}
		proposal = p
		op.Message = fmt.Sprintf("Vote %s on %s", req.Choice, p.Title)
		op.Details = fmt.Sprintf("id=%s power=%g", id, power)
		return next, nil
	})
	if err != nil {
		return proposal, fmt.Errorf("failed to vote: %w", err)
	}
	return proposal, nil
}
