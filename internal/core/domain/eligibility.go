package domain

import "time"

const DefaultCooldown = 7 * 24 * time.Hour

// UnidentifiedVotePolicy decides what happens to a vote submitted with
// neither a user nor a device identity.
type UnidentifiedVotePolicy string

const (
	// UnidentifiedAllow tallies the vote without deduplication or cooldown.
	UnidentifiedAllow UnidentifiedVotePolicy = "allow"
	// UnidentifiedReject fails the submission with ErrMissingVoter.
	UnidentifiedReject UnidentifiedVotePolicy = "reject"
)

type Eligibility struct {
	HasVoted       bool       `json:"has_voted"`
	CanVoteAgain   bool       `json:"can_vote_again"`
	LastVotedAt    *time.Time `json:"last_voted_at,omitempty"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

// CooldownPolicy decides re-vote eligibility from the time of the current
// vote. A submission exactly at the cooldown boundary is still rejected.
type CooldownPolicy struct {
	Cooldown time.Duration
}

func (p CooldownPolicy) Allows(lastVotedAt, now time.Time) bool {
	return now.Sub(lastVotedAt) > p.Cooldown
}

// Check is the guard applied inside the ledger's critical section.
func (p CooldownPolicy) Check(current *Vote, now time.Time) error {
	if current == nil {
		return nil
	}
	if !p.Allows(current.VotedAt, now) {
		return ErrCooldownActive
	}
	return nil
}

func (p CooldownPolicy) Status(current *Vote, now time.Time) Eligibility {
	if current == nil {
		return Eligibility{CanVoteAgain: true}
	}
	last := current.VotedAt
	next := last.Add(p.Cooldown)
	return Eligibility{
		HasVoted:       true,
		CanVoteAgain:   p.Allows(last, now),
		LastVotedAt:    &last,
		NextEligibleAt: &next,
	}
}
