package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
	"github.com/vncsmyrnk/votemap/internal/platform/retry"
)

type personaService struct {
	voteRepo ports.VoteRepository
	results  ports.ResultService
	table    domain.PersonaTable
	window   int
	logger   *slog.Logger
}

type PersonaOption func(*personaService)

func WithPersonaTable(table domain.PersonaTable) PersonaOption {
	return func(s *personaService) {
		s.table = table
	}
}

func WithPersonaWindow(n int) PersonaOption {
	return func(s *personaService) {
		if n > 0 {
			s.window = n
		}
	}
}

func WithPersonaLogger(logger *slog.Logger) PersonaOption {
	return func(s *personaService) {
		s.logger = logger
	}
}

func NewPersonaService(voteRepo ports.VoteRepository, results ports.ResultService, opts ...PersonaOption) ports.PersonaService {
	s := &personaService{
		voteRepo: voteRepo,
		results:  results,
		table:    domain.DefaultPersonaTable,
		window:   domain.PersonaWindow,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *personaService) ComputeUserStats(ctx context.Context, voter domain.VoterIdentity) (*domain.UserStats, error) {
	if voter.IsZero() {
		return nil, domain.ErrMissingVoter
	}

	votes, err := retry.Idempotent(ctx, func() ([]*domain.Vote, error) {
		return s.voteRepo.ListVotesByVoter(ctx, voter)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	latest := latestPerTopic(votes)
	window := latest
	if len(window) > s.window {
		window = window[:s.window]
	}

	matched := make([]bool, len(window))
	g, gctx := errgroup.WithContext(ctx)
	for i, vote := range window {
		g.Go(func() error {
			counts, err := s.results.ComputeRegionResults(gctx, vote.TopicID, vote.Region)
			if err != nil {
				return err
			}
			majority, ok := counts.Majority()
			matched[i] = ok && majority == vote.Choice
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compare with regional majority: %w", err)
	}

	matches := 0
	for _, m := range matched {
		if m {
			matches++
		}
	}

	total := len(latest)
	rate := domain.MatchRate(matches, len(window))
	persona := s.table.Assign(total, rate)

	s.logger.Debug("user stats computed", "voter", voter.String(), "total_votes", total, "match_rate", rate)

	return &domain.UserStats{
		TotalVotes:  total,
		MatchRate:   rate,
		Title:       persona.Title,
		Description: persona.Description,
	}, nil
}

// latestPerTopic keeps the most recent vote per topic, newest first.
func latestPerTopic(votes []*domain.Vote) []*domain.Vote {
	byTopic := make(map[int64]*domain.Vote, len(votes))
	for _, v := range votes {
		if cur, ok := byTopic[v.TopicID]; !ok || v.VotedAt.After(cur.VotedAt) {
			byTopic[v.TopicID] = v
		}
	}

	out := make([]*domain.Vote, 0, len(byTopic))
	for _, v := range byTopic {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VotedAt.Equal(out[j].VotedAt) {
			return out[i].TopicID > out[j].TopicID
		}
		return out[i].VotedAt.After(out[j].VotedAt)
	})
	return out
}
