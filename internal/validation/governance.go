package validation

import (
	"strings"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

var validProposalTypes = map[model.ProposalType]bool{
	model.ProposalRebalance:       true,
	model.ProposalPolicyChange:    true,
	model.ProposalEmergencyAction: true,
}

var validVoteChoices = map[model.VoteChoice]bool{
	model.VoteFor:     true,
	model.VoteAgainst: true,
	model.VoteAbstain: true,
}

func ValidateCreateProposal(req request.CreateProposalRequest) error {
	errs := fields{}

	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "title is required"
	} else if len(req.Title) > 200 {
		errs["title"] = "title must be 200 characters or less"
	}

	if len(req.Description) > 2000 {
		errs["description"] = "description must be 2000 characters or less"
	}

	if !validProposalTypes[model.ProposalType(req.Type)] {
		errs["type"] = "type must be REBALANCE, POLICY_CHANGE or EMERGENCY_ACTION"
	}

	if req.VotingPower != nil && *req.VotingPower <= 0 {
		errs["votingPower"] = "votingPower must be positive"
	}

	if req.Deadline != nil && *req.Deadline <= 0 {
		errs["deadline"] = "deadline must be a unix millisecond timestamp"
	}

	return errs.err()
}

func ValidateVote(req request.VoteRequest) error {
	errs := fields{}

	if !validVoteChoices[model.VoteChoice(req.Choice)] {
		errs["choice"] = "choice must be for, against or abstain"
	}
	if req.Power != nil && *req.Power <= 0 {
		errs["power"] = "power must be positive"
	}

	return errs.err()
}
