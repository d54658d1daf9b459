package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vncsmyrnk/votemap/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports/mocks"
)

func TestReportService_ReportOngoing(t *testing.T) {
	ctx := context.Background()
	topics := memory.NewTopicRepository()
	open1 := topics.Save(domain.Topic{Title: "a", Status: domain.TopicStatusOngoing})
	open2 := topics.Save(domain.Topic{Title: "b", Status: domain.TopicStatusOngoing})
	topics.Save(domain.Topic{Title: "c", Status: domain.TopicStatusClosed})

	votes := memory.NewVoteRepository(topics)
	_, err := votes.RecordVote(ctx, &domain.Vote{TopicID: open1, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("d"), VotedAt: t0}, nil)
	require.NoError(t, err)

	report, err := NewReportService(topics, NewResultService(votes)).ReportOngoing(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, int64(1), report[open1].Total.TotalVotes)
	assert.Zero(t, report[open2].Total.TotalVotes)
}

func TestReportService_PropagatesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	results := mocks.NewMockResultService(ctrl)

	topics.EXPECT().ListByStatus(gomock.Any(), domain.TopicStatusOngoing).Return([]*domain.Topic{{ID: 1}}, nil)
	results.EXPECT().RecomputeResults(gomock.Any(), int64(1)).Return(nil, errors.New("boom"))

	_, err := NewReportService(topics, results).ReportOngoing(context.Background())
	assert.ErrorContains(t, err, "topic 1")
}
