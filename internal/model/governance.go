package model

import "encoding/json"

// ProposalType enumerates governance proposal kinds.
type ProposalType string

const (
	ProposalRebalance       ProposalType = "REBALANCE"
	ProposalPolicyChange    ProposalType = "POLICY_CHANGE"
	ProposalEmergencyAction ProposalType = "EMERGENCY_ACTION"
)

// ProposalStatus is the lifecycle state of a proposal. Only ACTIVE is ever stored;
// PASSED and REJECTED are derived at read time.
type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "DRAFT"
	ProposalActive   ProposalStatus = "ACTIVE"
	ProposalPassed   ProposalStatus = "PASSED"
	ProposalRejected ProposalStatus = "REJECTED"
)

// VoteChoice is one side of a vote.
type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
	VoteAbstain VoteChoice = "abstain"
)

// Votes is the running tally of a proposal.
type Votes struct {
	For     float64 `json:"for"`
	Against float64 `json:"against"`
	Abstain float64 `json:"abstain"`
}

// Total returns the sum of all votes cast.
func (v Votes) Total() float64 {
	return v.For + v.Against + v.Abstain
}

// GovernanceProposal is a DAO-style proposal. Deadline is in unix milliseconds.
type GovernanceProposal struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Type            ProposalType    `json:"type"`
	ProposedChanges json.RawMessage `json:"proposedChanges,omitempty"`
	VotingPower     float64         `json:"votingPower"`
	Status          ProposalStatus  `json:"status"`
	Deadline        int64           `json:"deadline"`
	Votes           Votes           `json:"votes"`
}
