package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
	"github.com/vncsmyrnk/votemap/internal/platform/metrics"
	"github.com/vncsmyrnk/votemap/internal/platform/retry"
)

type resultService struct {
	voteRepo ports.VoteRepository
	group    singleflight.Group
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type ResultOption func(*resultService)

func WithResultLogger(logger *slog.Logger) ResultOption {
	return func(s *resultService) {
		s.logger = logger
	}
}

func WithResultMetrics(m *metrics.Metrics) ResultOption {
	return func(s *resultService) {
		s.metrics = m
	}
}

// WithResultTimeout bounds a coalesced tally query. The query outlives any
// single caller, so it cannot use a caller's deadline.
func WithResultTimeout(d time.Duration) ResultOption {
	return func(s *resultService) {
		s.timeout = d
	}
}

func NewResultService(voteRepo ports.VoteRepository, opts ...ResultOption) ports.ResultService {
	s := &resultService{
		voteRepo: voteRepo,
		timeout:  10 * time.Second,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *resultService) ComputeResults(ctx context.Context, topicID int64) (*domain.Tally, error) {
	if topicID <= 0 {
		return nil, domain.ErrInvalidTopicID
	}
	ch := s.group.DoChan(strconv.FormatInt(topicID, 10), func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.RecomputeResults(shared, topicID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Tally), nil
	}
}

func (s *resultService) RecomputeResults(ctx context.Context, topicID int64) (*domain.Tally, error) {
	if topicID <= 0 {
		return nil, domain.ErrInvalidTopicID
	}
	start := time.Now()
	counts, err := retry.Idempotent(ctx, func() ([]domain.RegionCount, error) {
		return s.voteRepo.CountByRegion(ctx, topicID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count votes for topic %d: %w", topicID, err)
	}
	s.metrics.ObserveTallyLatency(time.Since(start))

	return domain.NewTally(counts), nil
}

func (s *resultService) ComputeRegionResults(ctx context.Context, topicID int64, region string) (domain.ChoiceCounts, error) {
	if topicID <= 0 {
		return domain.ChoiceCounts{}, domain.ErrInvalidTopicID
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return domain.ChoiceCounts{}, domain.ErrMissingRegion
	}
	counts, err := retry.Idempotent(ctx, func() (domain.ChoiceCounts, error) {
		return s.voteRepo.CountRegion(ctx, topicID, region)
	})
	if err != nil {
		return domain.ChoiceCounts{}, fmt.Errorf("failed to count region %q for topic %d: %w", region, topicID, err)
	}
	return counts, nil
}
