package usecase

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"
	"tokenomics/domain"
	"tokenomics/interface/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tonkeeper/tongo"
)

const (
	DefaultVotingPeriod = 7 * 24 * time.Hour
	DefaultQuorumBps    = 1000
	DefaultApprovalBps  = 5000
)

// SupplyReader is the part of the ledger governance needs to derive quorum.
type SupplyReader interface {
	CurrentSupply() int64
}

type GovernanceOptions struct {
	VotingPeriod       time.Duration
	QuorumBps          int64
	ApprovalBps        int64
	RequireTonProposer bool
	TestNet            bool
}

type GovernanceInteractor struct {
	mu        sync.Mutex
	proposals repository.Store[string, domain.Proposal]
	supply    SupplyReader
	sink      domain.NotificationSink
	clock     func() time.Time
	options   GovernanceOptions
}

func NewGovernanceInteractor(proposals repository.Store[string, domain.Proposal],
	supply SupplyReader,
	sink domain.NotificationSink,
	clock func() time.Time,
	options GovernanceOptions) *GovernanceInteractor {
	if options.VotingPeriod <= 0 {
		options.VotingPeriod = DefaultVotingPeriod
	}
	if options.QuorumBps <= 0 {
		options.QuorumBps = DefaultQuorumBps
	}
	if options.ApprovalBps <= 0 {
		options.ApprovalBps = DefaultApprovalBps
	}
	if clock == nil {
		clock = time.Now
	}
	return &GovernanceInteractor{
		proposals: proposals,
		supply:    supply,
		sink:      sink,
		clock:     clock,
		options:   options,
	}
}

func (interactor *GovernanceInteractor) CreateProposal(title, description, proposer string, votingPower int64) (domain.Proposal, error) {
	title = strings.TrimSpace(title)
	if title == "" || votingPower < 0 {
		return domain.Proposal{}, domain.ErrorInvalidProposal
	}

	proposer, err := interactor.normalizeProposer(proposer)
	if err != nil {
		return domain.Proposal{}, err
	}

	now := interactor.clock()
	proposal := domain.Proposal{
		ID:                    uuid.NewString(),
		Title:                 title,
		Description:           description,
		Proposer:              proposer,
		VotingPowerAtCreation: votingPower,
		Status:                domain.ProposalActive,
		CreatedAt:             now,
		EndTime:               now.Add(interactor.options.VotingPeriod),
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()
	interactor.proposals.Put(proposal.ID, proposal)

	log.Info().Str("proposal", proposal.ID).Str("proposer", proposer).Time("end_time", proposal.EndTime).Msg("proposal created")
	return proposal, nil
}

// normalizeProposer stores TON proposers in their user-friendly form so that
// raw and base64 spellings of one account compare equal.
func (interactor *GovernanceInteractor) normalizeProposer(proposer string) (string, error) {
	proposer = strings.TrimSpace(proposer)
	if !interactor.options.RequireTonProposer {
		return proposer, nil
	}

	accountId, err := tongo.ParseAccountID(proposer)
	if err != nil {
		return "", fmt.Errorf("%q: %w", proposer, domain.ErrorInvalidProposer)
	}
	return accountId.ToHuman(true, interactor.options.TestNet), nil
}

// Vote adds votingPower to the chosen tally and resolves the proposal once the
// cumulative votes reach quorum.
func (interactor *GovernanceInteractor) Vote(proposalId string, choice domain.VoteChoice, votingPower int64) (domain.Proposal, error) {
	if !choice.IsValid() || votingPower < 0 {
		return domain.Proposal{}, fmt.Errorf("%q with power %v: %w", choice, votingPower, domain.ErrorInvalidVote)
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	proposal, exist := interactor.proposals.Get(proposalId)
	if !exist {
		return domain.Proposal{}, fmt.Errorf("%v: %w", proposalId, domain.ErrorProposalNotFound)
	}

	now := interactor.clock()
	if proposal.Status == domain.ProposalActive && now.After(proposal.EndTime) {
		proposal = interactor.expireLocked(proposal, now)
	}
	if !proposal.IsOpen(now) {
		return proposal, fmt.Errorf("%v is %v: %w", proposalId, proposal.Status, domain.ErrorVotingClosed)
	}

	if proposal.Votes.Total() > math.MaxInt64-votingPower {
		return proposal, fmt.Errorf("power %v overflows tally %v: %w", votingPower, proposal.Votes.Total(), domain.ErrorInvalidVote)
	}

	switch choice {
	case domain.VoteFor:
		proposal.Votes.For += votingPower
	case domain.VoteAgainst:
		proposal.Votes.Against += votingPower
	case domain.VoteAbstain:
		proposal.Votes.Abstain += votingPower
	}

	if interactor.reachedQuorum(proposal.Votes.Total()) {
		if interactor.approved(proposal.Votes) {
			proposal.Status = domain.ProposalPassed
		} else {
			proposal.Status = domain.ProposalRejected
		}
		proposal.ResolvedAt = &now
	}
	interactor.proposals.Put(proposal.ID, proposal)

	if proposal.Status != domain.ProposalActive {
		interactor.notifyResolution(proposal)
	}
	return proposal, nil
}

// reachedQuorum compares votes against supply * quorumBps / 10000 exactly.
func (interactor *GovernanceInteractor) reachedQuorum(votes int64) bool {
	lhs := new(big.Int).Mul(big.NewInt(votes), big.NewInt(basisPoints))
	rhs := new(big.Int).Mul(big.NewInt(interactor.supply.CurrentSupply()), big.NewInt(interactor.options.QuorumBps))
	return lhs.Cmp(rhs) >= 0
}

// approved reports whether the for votes exceed the approval share of the
// decisive (for + against) votes. The default share of one half is a plain
// for > against majority.
func (interactor *GovernanceInteractor) approved(votes domain.VoteTally) bool {
	lhs := new(big.Int).Mul(big.NewInt(votes.For), big.NewInt(basisPoints))
	rhs := new(big.Int).Mul(new(big.Int).Add(big.NewInt(votes.For), big.NewInt(votes.Against)), big.NewInt(interactor.options.ApprovalBps))
	return lhs.Cmp(rhs) > 0
}

// SweepExpired rejects every active proposal whose voting period has ended
// without reaching quorum.
func (interactor *GovernanceInteractor) SweepExpired() []domain.Proposal {
	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	now := interactor.clock()
	expired := make([]domain.Proposal, 0)
	for _, proposal := range interactor.proposals.List() {
		if proposal.Status == domain.ProposalActive && now.After(proposal.EndTime) {
			expired = append(expired, interactor.expireLocked(proposal, now))
		}
	}
	sortProposals(expired)
	return expired
}

func (interactor *GovernanceInteractor) expireLocked(proposal domain.Proposal, now time.Time) domain.Proposal {
	proposal.Status = domain.ProposalRejected
	proposal.Expired = true
	proposal.ResolvedAt = &now
	interactor.proposals.Put(proposal.ID, proposal)
	interactor.notifyResolution(proposal)
	return proposal
}

func (interactor *GovernanceInteractor) notifyResolution(proposal domain.Proposal) {
	kind := domain.NotifySuccess
	title := "Proposal passed"
	if proposal.Status == domain.ProposalRejected {
		kind = domain.NotifyWarning
		title = "Proposal rejected"
	}

	detail := fmt.Sprintf("%q: %v for, %v against, %v abstain", proposal.Title, proposal.Votes.For, proposal.Votes.Against, proposal.Votes.Abstain)
	if proposal.Expired {
		detail = fmt.Sprintf("%q expired without reaching quorum", proposal.Title)
	}
	interactor.sink.Notify(kind, title, detail)
	log.Info().Str("proposal", proposal.ID).Str("status", string(proposal.Status)).Bool("expired", proposal.Expired).Msg("proposal resolved")
}

func (interactor *GovernanceInteractor) Proposal(proposalId string) (domain.Proposal, error) {
	proposal, exist := interactor.proposals.Get(proposalId)
	if !exist {
		return domain.Proposal{}, fmt.Errorf("%v: %w", proposalId, domain.ErrorProposalNotFound)
	}
	return proposal, nil
}

// Proposals returns all proposals ordered by creation time.
func (interactor *GovernanceInteractor) Proposals() []domain.Proposal {
	proposals := interactor.proposals.List()
	sortProposals(proposals)
	return proposals
}

func (interactor *GovernanceInteractor) ActiveCount() int {
	count := 0
	for _, proposal := range interactor.proposals.List() {
		if proposal.Status == domain.ProposalActive {
			count++
		}
	}
	return count
}

func (interactor *GovernanceInteractor) Restore(proposals []domain.Proposal) {
	items := make(map[string]domain.Proposal, len(proposals))
	for _, proposal := range proposals {
		items[proposal.ID] = proposal
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()
	interactor.proposals.Replace(items)
}

func sortProposals(proposals []domain.Proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].CreatedAt.Equal(proposals[j].CreatedAt) {
			return proposals[i].ID < proposals[j].ID
		}
		return proposals[i].CreatedAt.Before(proposals[j].CreatedAt)
	})
}
