package request

import "encoding/json"

// CreateProposalRequest is the request body for POST /api/governance/proposals.
type CreateProposalRequest struct {
	Title           string          `json:"title"`                     // Title is required, at most 200 characters.
	Description     string          `json:"description"`               // Description is optional, at most 2000 characters.
	Type            string          `json:"type"`                      // Type is REBALANCE, POLICY_CHANGE or EMERGENCY_ACTION.
	ProposedChanges json.RawMessage `json:"proposedChanges,omitempty"` // ProposedChanges is stored as-is.
	VotingPower     *float64        `json:"votingPower,omitempty"`     // VotingPower defaults to 100.
	Deadline        *int64          `json:"deadline,omitempty"`        // Deadline is unix milliseconds, default now + 7 days.
}

// VoteRequest is the request body for POST /api/governance/proposals/{proposalID}/vote.
type VoteRequest struct {
	Choice string   `json:"choice"`          // Choice is for, against or abstain.
	Power  *float64 `json:"power,omitempty"` // Power defaults to 10 and must be positive.
}
