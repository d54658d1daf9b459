package ports

//go:generate mockgen -source=vote_ports.go -destination=mocks/vote.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// VoteGuard runs while the ledger holds the voter's key for the topic.
// current is nil when the voter has no vote yet. Returning an error aborts
// the write and the error is returned unchanged.
type VoteGuard func(current *domain.Vote) error

type VoteRepository interface {
	// RecordVote inserts vote, or overwrites the voter's current vote for the
	// topic in place (keeping its ID) when guard allows it. Votes without a
	// voter identity are always inserted and guard is not consulted.
	RecordVote(ctx context.Context, vote *domain.Vote, guard VoteGuard) (*domain.Vote, error)
	// FindCurrentVote returns nil, nil when the voter has not voted.
	FindCurrentVote(ctx context.Context, topicID int64, voter domain.VoterIdentity) (*domain.Vote, error)
	ListVotes(ctx context.Context, topicID int64) ([]*domain.Vote, error)
	ListVotesByVoter(ctx context.Context, voter domain.VoterIdentity) ([]*domain.Vote, error)
	CountByRegion(ctx context.Context, topicID int64) ([]domain.RegionCount, error)
	CountRegion(ctx context.Context, topicID int64, region string) (domain.ChoiceCounts, error)
	// ReassignVotes moves anonymous votes cast by deviceID to userID. It skips
	// votes already owned by a user and topics userID already voted on, so it
	// is safe to call repeatedly.
	ReassignVotes(ctx context.Context, deviceID string, userID uuid.UUID) (int64, error)
}

type VoteInput struct {
	TopicID int64
	Choice  domain.Choice
	Region  string
	Voter   domain.VoterIdentity
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.Vote, error)
	CheckStatus(ctx context.Context, topicID int64, voter domain.VoterIdentity) (*domain.Eligibility, error)
	ClaimDeviceVotes(ctx context.Context, deviceID string, userID uuid.UUID) (int64, error)
}
