package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
	"github.com/vncsmyrnk/votemap/internal/platform/metrics"
	"github.com/vncsmyrnk/votemap/internal/platform/retry"
)

type voteService struct {
	topics       ports.TopicCatalog
	voteRepo     ports.VoteRepository
	results      ports.ResultService
	broadcaster  ports.Broadcaster
	policy       domain.CooldownPolicy
	unidentified domain.UnidentifiedVotePolicy
	now          func() time.Time
	timeout      time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
	fanout       *topicFanout
}

type VoteOption func(*voteService)

func WithVoteLogger(logger *slog.Logger) VoteOption {
	return func(s *voteService) {
		s.logger = logger
	}
}

func WithVoteMetrics(m *metrics.Metrics) VoteOption {
	return func(s *voteService) {
		s.metrics = m
	}
}

func WithCooldown(d time.Duration) VoteOption {
	return func(s *voteService) {
		s.policy = domain.CooldownPolicy{Cooldown: d}
	}
}

func WithUnidentifiedPolicy(p domain.UnidentifiedVotePolicy) VoteOption {
	return func(s *voteService) {
		s.unidentified = p
	}
}

func WithClock(now func() time.Time) VoteOption {
	return func(s *voteService) {
		s.now = now
	}
}

// WithBroadcastTimeout bounds how long a single fan-out may take.
func WithBroadcastTimeout(d time.Duration) VoteOption {
	return func(s *voteService) {
		s.timeout = d
	}
}

func NewVoteService(topics ports.TopicCatalog, voteRepo ports.VoteRepository, results ports.ResultService, broadcaster ports.Broadcaster, opts ...VoteOption) ports.VoteService {
	s := &voteService{
		topics:       topics,
		voteRepo:     voteRepo,
		results:      results,
		broadcaster:  broadcaster,
		policy:       domain.CooldownPolicy{Cooldown: domain.DefaultCooldown},
		unidentified: domain.UnidentifiedAllow,
		now:          time.Now,
		timeout:      5 * time.Second,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fanout = newTopicFanout(broadcaster, s.timeout, s.logger)
	return s
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	input.Region = strings.TrimSpace(input.Region)
	if err := s.validate(input); err != nil {
		s.metrics.IncrementVoteOutcome("invalid")
		return nil, err
	}

	topic, err := s.topics.GetByID(ctx, input.TopicID)
	if err != nil {
		return nil, err
	}
	if !topic.AcceptsVotes() {
		return nil, domain.ErrTopicClosed
	}

	now := s.now()
	revote := false
	vote := &domain.Vote{
		ID:      uuid.New(),
		TopicID: input.TopicID,
		Choice:  input.Choice,
		Region:  input.Region,
		Voter:   input.Voter,
		VotedAt: now,
	}

	stored, err := s.voteRepo.RecordVote(ctx, vote, func(current *domain.Vote) error {
		if err := s.policy.Check(current, now); err != nil {
			return err
		}
		revote = current != nil
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCooldownActive) {
			s.metrics.IncrementVoteOutcome("cooldown")
			s.logger.Info("vote rejected by cooldown", "topic_id", input.TopicID, "voter", input.Voter.String())
			return nil, err
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.metrics.IncrementVoteOutcome("error")
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if revote {
		s.metrics.IncrementVoteOutcome("revote")
	} else {
		s.metrics.IncrementVoteOutcome("accepted")
	}
	s.logger.Info("vote recorded",
		"topic_id", stored.TopicID,
		"region", stored.Region,
		"choice", stored.Choice,
		"revote", revote,
	)

	// The write is durable at this point; a failed recompute only costs the
	// broadcast for this vote. Recompute runs inside the topic's lane so
	// snapshots are published in the order they were computed.
	err = s.fanout.Sequence(stored.TopicID, func() ([]domain.Event, error) {
		tally, err := s.results.RecomputeResults(ctx, stored.TopicID)
		if err != nil {
			return nil, err
		}
		return []domain.Event{
			domain.NewVoteUpdate(stored, tally),
			domain.NewResultsUpdate(stored.TopicID, tally),
		}, nil
	})
	if err != nil {
		s.logger.Error("failed to recompute results after vote", "topic_id", stored.TopicID, "error", err)
	}
	return stored, nil
}

func (s *voteService) CheckStatus(ctx context.Context, topicID int64, voter domain.VoterIdentity) (*domain.Eligibility, error) {
	if topicID <= 0 {
		return nil, domain.ErrInvalidTopicID
	}
	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		return nil, err
	}
	if voter.IsZero() {
		if s.unidentified == domain.UnidentifiedReject {
			return nil, domain.ErrMissingVoter
		}
		status := s.policy.Status(nil, s.now())
		return &status, nil
	}

	current, err := retry.Idempotent(ctx, func() (*domain.Vote, error) {
		return s.voteRepo.FindCurrentVote(ctx, topicID, voter)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find current vote: %w", err)
	}

	status := s.policy.Status(current, s.now())
	return &status, nil
}

func (s *voteService) ClaimDeviceVotes(ctx context.Context, deviceID string, userID uuid.UUID) (int64, error) {
	if strings.TrimSpace(deviceID) == "" {
		return 0, fmt.Errorf("%w: device id is required", domain.ErrValidation)
	}
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	n, err := s.voteRepo.ReassignVotes(ctx, deviceID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign votes: %w", err)
	}

	s.metrics.AddReassigned(n)
	if n > 0 {
		s.logger.Info("device votes reassigned", "user_id", userID, "count", n)
	}
	return n, nil
}

func (s *voteService) validate(input ports.VoteInput) error {
	if input.TopicID <= 0 {
		return domain.ErrInvalidTopicID
	}
	if !input.Choice.Valid() {
		return domain.ErrInvalidChoice
	}
	if input.Region == "" {
		return domain.ErrMissingRegion
	}
	if input.Voter.IsZero() && s.unidentified == domain.UnidentifiedReject {
		return domain.ErrMissingVoter
	}
	return nil
}
