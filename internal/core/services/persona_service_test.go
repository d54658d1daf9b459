package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vncsmyrnk/votemap/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/core/ports/mocks"
)

type personaFixture struct {
	topics  *memory.TopicRepository
	votes   *memory.VoteRepository
	results ports.ResultService
}

func newPersonaFixture() *personaFixture {
	topics := memory.NewTopicRepository()
	votes := memory.NewVoteRepository(topics)
	return &personaFixture{topics: topics, votes: votes, results: NewResultService(votes)}
}

// record writes a vote straight to the ledger, bypassing the cooldown.
func (f *personaFixture) record(t *testing.T, topicID int64, voter domain.VoterIdentity, choice domain.Choice, region string, at time.Time) {
	t.Helper()
	_, err := f.votes.RecordVote(context.Background(), &domain.Vote{
		TopicID: topicID, Choice: choice, Region: region, Voter: voter, VotedAt: at,
	}, nil)
	require.NoError(t, err)
}

func (f *personaFixture) topic() int64 {
	return f.topics.Save(domain.Topic{Title: "t", Status: domain.TopicStatusOngoing})
}

func TestPersonaService_NoVotes(t *testing.T) {
	f := newPersonaFixture()
	svc := NewPersonaService(f.votes, f.results)

	stats, err := svc.ComputeUserStats(context.Background(), domain.DeviceVoter("fresh"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalVotes)
	assert.Equal(t, 0, stats.MatchRate)
	assert.Equal(t, "Newcomer", stats.Title)

	_, err = svc.ComputeUserStats(context.Background(), domain.VoterIdentity{})
	assert.ErrorIs(t, err, domain.ErrMissingVoter)
}

func TestPersonaService_NativeWithinWindow(t *testing.T) {
	f := newPersonaFixture()
	me := domain.DeviceVoter("me")

	// Six topics; on all but the oldest the voter sides with Seoul's majority.
	for i := 0; i < 6; i++ {
		id := f.topic()
		at := t0.Add(time.Duration(i) * time.Hour)
		mine := domain.ChoiceA
		if i == 0 {
			mine = domain.ChoiceB
		}
		f.record(t, id, me, mine, "Seoul", at)
		f.record(t, id, domain.DeviceVoter(fmt.Sprintf("n1-%d", i)), domain.ChoiceA, "Seoul", at)
		f.record(t, id, domain.DeviceVoter(fmt.Sprintf("n2-%d", i)), domain.ChoiceA, "Seoul", at)
	}

	stats, err := NewPersonaService(f.votes, f.results).ComputeUserStats(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalVotes)
	assert.Equal(t, 100, stats.MatchRate, "only the five most recent topics are compared")
	assert.Equal(t, "Native", stats.Title)
}

func TestPersonaService_TiesAreNotMatches(t *testing.T) {
	f := newPersonaFixture()
	me := domain.DeviceVoter("me")

	tied := f.topic()
	f.record(t, tied, me, domain.ChoiceA, "Busan", t0)
	f.record(t, tied, domain.DeviceVoter("x"), domain.ChoiceB, "Busan", t0)

	won := f.topic()
	f.record(t, won, me, domain.ChoiceB, "Busan", t0.Add(time.Hour))

	stats, err := NewPersonaService(f.votes, f.results).ComputeUserStats(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalVotes)
	assert.Equal(t, 50, stats.MatchRate)
	assert.Equal(t, "Newcomer", stats.Title)
}

func TestPersonaService_Rebel(t *testing.T) {
	f := newPersonaFixture()
	me := domain.DeviceVoter("me")
	for i := 0; i < 5; i++ {
		id := f.topic()
		at := t0.Add(time.Duration(i) * time.Hour)
		f.record(t, id, me, domain.ChoiceB, "Daegu", at)
		f.record(t, id, domain.DeviceVoter(fmt.Sprintf("a-%d", i)), domain.ChoiceA, "Daegu", at)
		f.record(t, id, domain.DeviceVoter(fmt.Sprintf("b-%d", i)), domain.ChoiceA, "Daegu", at)
	}

	stats, err := NewPersonaService(f.votes, f.results).ComputeUserStats(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MatchRate)
	assert.Equal(t, "Rebel", stats.Title)
}

func TestPersonaService_SwappedTableAndWindow(t *testing.T) {
	f := newPersonaFixture()
	me := domain.DeviceVoter("me")
	for i := 0; i < 3; i++ {
		f.record(t, f.topic(), me, domain.ChoiceA, "Seoul", t0.Add(time.Duration(i)*time.Hour))
	}

	table := domain.PersonaTable{Fallback: domain.Persona{Title: "Anyone", Description: "custom"}}
	svc := NewPersonaService(f.votes, f.results, WithPersonaTable(table), WithPersonaWindow(1))

	stats, err := svc.ComputeUserStats(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalVotes)
	assert.Equal(t, 100, stats.MatchRate)
	assert.Equal(t, "Anyone", stats.Title)
	assert.Equal(t, "custom", stats.Description)
}

func TestPersonaService_RegionLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	svc := NewPersonaService(repo, results)

	me := domain.DeviceVoter("me")
	repo.EXPECT().ListVotesByVoter(gomock.Any(), me).Return([]*domain.Vote{
		{TopicID: 1, Choice: domain.ChoiceA, Region: "Seoul", Voter: me, VotedAt: t0},
	}, nil)
	results.EXPECT().ComputeRegionResults(gomock.Any(), int64(1), "Seoul").Return(domain.ChoiceCounts{}, domain.ErrTopicNotFound)

	_, err := svc.ComputeUserStats(context.Background(), me)
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestLatestPerTopic(t *testing.T) {
	votes := []*domain.Vote{
		{TopicID: 1, Choice: domain.ChoiceA, VotedAt: t0},
		{TopicID: 1, Choice: domain.ChoiceB, VotedAt: t0.Add(time.Hour)},
		{TopicID: 2, Choice: domain.ChoiceA, VotedAt: t0.Add(30 * time.Minute)},
		{TopicID: 3, Choice: domain.ChoiceA, VotedAt: t0.Add(30 * time.Minute)},
	}
	got := latestPerTopic(votes)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].TopicID)
	assert.Equal(t, domain.ChoiceB, got[0].Choice)
	assert.Equal(t, int64(3), got[1].TopicID)
	assert.Equal(t, int64(2), got[2].TopicID)
}
