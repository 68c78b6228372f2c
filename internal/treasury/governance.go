package treasury

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// Proposal defaults applied when the caller leaves them out.
const (
	DefaultVotingPower    = 100
	DefaultVotePower      = 10
	DefaultVotingDuration = 7 * 24 * time.Hour
)

// ProposalDraft is the caller-supplied part of a new proposal.
type ProposalDraft struct {
	Title           string
	Description     string
	Type            model.ProposalType
	ProposedChanges json.RawMessage
	VotingPower     float64
	Deadline        int64
}

// ProposalStatusAt derives the displayed status. After the deadline a proposal passes when
// more than half of all votes cast are in favour; otherwise the stored status stands.
func ProposalStatusAt(p model.GovernanceProposal, now time.Time) model.ProposalStatus {
	if now.UnixMilli() <= p.Deadline {
		return p.Status
	}
	if percentOf(p.Votes.For, p.Votes.Total()) > 50 {
		return model.ProposalPassed
	}
	return model.ProposalRejected
}

// WithDerivedStatus returns copies of the proposals carrying their read-time status.
func WithDerivedStatus(proposals []model.GovernanceProposal, now time.Time) []model.GovernanceProposal {
	out := make([]model.GovernanceProposal, len(proposals))
	for i, p := range proposals {
		p.Status = ProposalStatusAt(p, now)
		out[i] = p
	}
	return out
}

// CreateProposal prepends a new ACTIVE proposal with an empty tally.
func (e *Engine) CreateProposal(s model.Snapshot, d ProposalDraft) (model.Snapshot, model.GovernanceProposal) {
	now := e.now()
	if d.VotingPower <= 0 {
		d.VotingPower = DefaultVotingPower
	}
	if d.Deadline == 0 {
		d.Deadline = now.Add(DefaultVotingDuration).UnixMilli()
	}

	p := model.GovernanceProposal{
		ID:              e.newID(),
		Title:           d.Title,
		Description:     d.Description,
		Type:            d.Type,
		ProposedChanges: d.ProposedChanges,
		VotingPower:     d.VotingPower,
		Status:          model.ProposalActive,
		Deadline:        d.Deadline,
	}

	next := s.Clone()
	next.GovernanceProposals = append([]model.GovernanceProposal{p}, s.GovernanceProposals...)
	return next, p
}

// Vote adds power to one side of the tally of proposal id.
func (e *Engine) Vote(s model.Snapshot, id string, choice model.VoteChoice, power float64) (model.Snapshot, model.GovernanceProposal, error) {
	idx := -1
	for i, p := range s.GovernanceProposals {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, model.GovernanceProposal{}, fmt.Errorf("%w: %s", apperrors.ErrProposalNotFound, id)
	}

	p := s.GovernanceProposals[idx]
	if status := ProposalStatusAt(p, e.now()); status != model.ProposalActive {
		return s, p, fmt.Errorf("%w: status is %s", apperrors.ErrProposalClosed, status)
	}

	switch choice {
	case model.VoteFor:
		p.Votes.For += power
	case model.VoteAgainst:
		p.Votes.Against += power
	case model.VoteAbstain:
		p.Votes.Abstain += power
	default:
		return s, p, fmt.Errorf("%w: %q", apperrors.ErrInvalidVoteChoice, choice)
	}

	next := s.Clone()
	next.GovernanceProposals[idx] = p
	return next, p, nil
}
