package domain

import "time"

type ProposalStatus string

const (
	ProposalActive   ProposalStatus = "active"
	ProposalPassed   ProposalStatus = "passed"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExecuted ProposalStatus = "executed"
)

type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
	VoteAbstain VoteChoice = "abstain"
)

func (c VoteChoice) IsValid() bool {
	switch c {
	case VoteFor, VoteAgainst, VoteAbstain:
		return true
	}
	return false
}

type VoteTally struct {
	For     int64 `json:"for"`
	Against int64 `json:"against"`
	Abstain int64 `json:"abstain"`
}

func (t VoteTally) Total() int64 {
	return t.For + t.Against + t.Abstain
}

type Proposal struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	Proposer              string         `json:"proposer"`
	VotingPowerAtCreation int64          `json:"voting_power_at_creation"`
	Status                ProposalStatus `json:"status"`
	Votes                 VoteTally      `json:"votes"`
	CreatedAt             time.Time      `json:"created_at"`
	EndTime               time.Time      `json:"end_time"`
	ResolvedAt            *time.Time     `json:"resolved_at"`
	Expired               bool           `json:"expired,omitempty"`
}

// IsOpen reports whether the proposal still accepts votes at the given time.
func (p Proposal) IsOpen(now time.Time) bool {
	return p.Status == ProposalActive && !now.After(p.EndTime)
}
