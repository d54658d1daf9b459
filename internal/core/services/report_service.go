package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type reportService struct {
	topics  ports.TopicCatalog
	results ports.ResultService
}

func NewReportService(topics ports.TopicCatalog, results ports.ResultService) ports.ReportService {
	return &reportService{
		topics:  topics,
		results: results,
	}
}

// ReportOngoing computes the tally of every ongoing topic concurrently.
func (s *reportService) ReportOngoing(ctx context.Context) (map[int64]*domain.Tally, error) {
	topics, err := s.topics.ListByStatus(ctx, domain.TopicStatusOngoing)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ongoing topics: %w", err)
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[int64]*domain.Tally, len(topics))
	)
	errChan := make(chan error, len(topics))

	for _, topic := range topics {
		wg.Add(1)
		go func(topicID int64) {
			defer wg.Done()
			tally, err := s.results.RecomputeResults(ctx, topicID)
			if err != nil {
				errChan <- fmt.Errorf("failed to compute results for topic %d: %w", topicID, err)
				return
			}
			mu.Lock()
			out[topicID] = tally
			mu.Unlock()
		}(topic.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
