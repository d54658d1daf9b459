package ports

//go:generate mockgen -source=result_ports.go -destination=mocks/result.go -package=mocks

import (
	"context"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

type ResultService interface {
	// ComputeResults may share an in-flight computation with concurrent
	// callers for the same topic.
	ComputeResults(ctx context.Context, topicID int64) (*domain.Tally, error)
	// RecomputeResults always reads the ledger afresh. The write path uses it
	// so the tally reflects the write that triggered it.
	RecomputeResults(ctx context.Context, topicID int64) (*domain.Tally, error)
	ComputeRegionResults(ctx context.Context, topicID int64, region string) (domain.ChoiceCounts, error)
}

type ReportService interface {
	ReportOngoing(ctx context.Context) (map[int64]*domain.Tally, error)
}
