package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vncsmyrnk/votemap/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/core/ports/mocks"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func ongoingTopic(id int64) *domain.Topic {
	return &domain.Topic{ID: id, Title: "Mint chocolate", OptionA: "Yes", OptionB: "No", Status: domain.TopicStatusOngoing}
}

func TestVoteService_RejectsInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	svc := NewVoteService(topics, repo, results, nil, WithUnidentifiedPolicy(domain.UnidentifiedReject))

	device := domain.DeviceVoter("d1")
	tests := []struct {
		name  string
		input ports.VoteInput
		want  error
	}{
		{"bad topic", ports.VoteInput{TopicID: 0, Choice: domain.ChoiceA, Region: "Seoul", Voter: device}, domain.ErrInvalidTopicID},
		{"bad choice", ports.VoteInput{TopicID: 1, Choice: "C", Region: "Seoul", Voter: device}, domain.ErrInvalidChoice},
		{"blank region", ports.VoteInput{TopicID: 1, Choice: domain.ChoiceA, Region: "  ", Voter: device}, domain.ErrMissingRegion},
		{"no voter", ports.VoteInput{TopicID: 1, Choice: domain.ChoiceA, Region: "Seoul"}, domain.ErrMissingVoter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Vote(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestVoteService_TopicChecks(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	svc := NewVoteService(topics, repo, results, nil)

	input := ports.VoteInput{TopicID: 7, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("d1")}

	topics.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, domain.ErrTopicNotFound)
	_, err := svc.Vote(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	closed := ongoingTopic(7)
	closed.Status = domain.TopicStatusClosed
	topics.EXPECT().GetByID(gomock.Any(), int64(7)).Return(closed, nil)
	_, err = svc.Vote(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrTopicClosed)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVoteService_CooldownGuardRunsInsideLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	clock := newTestClock(t0.Add(24 * time.Hour))
	svc := NewVoteService(topics, repo, results, nil, WithClock(clock.Now))

	topics.EXPECT().GetByID(gomock.Any(), int64(1)).Return(ongoingTopic(1), nil)
	repo.EXPECT().RecordVote(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *domain.Vote, guard ports.VoteGuard) (*domain.Vote, error) {
			current := &domain.Vote{ID: uuid.New(), TopicID: 1, Choice: domain.ChoiceA, Region: "Seoul", Voter: v.Voter, VotedAt: t0}
			return nil, guard(current)
		})
	results.EXPECT().RecomputeResults(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Vote(context.Background(), ports.VoteInput{TopicID: 1, Choice: domain.ChoiceB, Region: "Seoul", Voter: domain.DeviceVoter("d1")})
	assert.ErrorIs(t, err, domain.ErrCooldownActive)
}

func TestVoteService_PublishesVoteThenResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	svc := NewVoteService(topics, repo, results, broadcaster, WithClock(func() time.Time { return t0 }))

	tally := domain.NewTally([]domain.RegionCount{{Region: "Seoul", Choice: domain.ChoiceA, Count: 1}})
	topics.EXPECT().GetByID(gomock.Any(), int64(5)).Return(ongoingTopic(5), nil)
	repo.EXPECT().RecordVote(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *domain.Vote, guard ports.VoteGuard) (*domain.Vote, error) {
			require.NoError(t, guard(nil))
			return v, nil
		})
	results.EXPECT().RecomputeResults(gomock.Any(), int64(5)).Return(tally, nil)

	done := make(chan struct{})
	gomock.InOrder(
		broadcaster.EXPECT().Publish(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, e domain.Event) error {
				assert.Equal(t, domain.EventVoteUpdate, e.Type)
				assert.Equal(t, "Seoul", e.Region)
				assert.Equal(t, domain.ChoiceA, e.Choice)
				return nil
			}),
		broadcaster.EXPECT().Publish(gomock.Any(), int64(5), domain.NewResultsUpdate(5, tally)).
			DoAndReturn(func(context.Context, int64, domain.Event) error {
				close(done)
				return errors.New("subscriber gone")
			}),
	)

	vote, err := svc.Vote(context.Background(), ports.VoteInput{TopicID: 5, Choice: domain.ChoiceA, Region: " Seoul ", Voter: domain.DeviceVoter("d1")})
	require.NoError(t, err)
	assert.Equal(t, "Seoul", vote.Region)
	assert.Equal(t, t0, vote.VotedAt)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not published")
	}
}

func TestVoteService_RecomputeFailureStillAcceptsVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	results := mocks.NewMockResultService(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	svc := NewVoteService(topics, repo, results, broadcaster)

	topics.EXPECT().GetByID(gomock.Any(), int64(5)).Return(ongoingTopic(5), nil)
	repo.EXPECT().RecordVote(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *domain.Vote, _ ports.VoteGuard) (*domain.Vote, error) { return v, nil })
	results.EXPECT().RecomputeResults(gomock.Any(), int64(5)).Return(nil, errors.New("db down"))
	broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	vote, err := svc.Vote(context.Background(), ports.VoteInput{TopicID: 5, Choice: domain.ChoiceB, Region: "Busan", Voter: domain.DeviceVoter("d1")})
	require.NoError(t, err)
	assert.Equal(t, domain.ChoiceB, vote.Choice)
}

func TestVoteService_StorageFailureIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	topics := mocks.NewMockTopicCatalog(ctrl)
	repo := mocks.NewMockVoteRepository(ctrl)
	svc := NewVoteService(topics, repo, mocks.NewMockResultService(ctrl), nil)

	boom := errors.New("connection reset")
	topics.EXPECT().GetByID(gomock.Any(), int64(5)).Return(ongoingTopic(5), nil)
	repo.EXPECT().RecordVote(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := svc.Vote(context.Background(), ports.VoteInput{TopicID: 5, Choice: domain.ChoiceB, Region: "Busan", Voter: domain.DeviceVoter("d1")})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to record vote")
}

type memoryStack struct {
	topics  *memory.TopicRepository
	votes   *memory.VoteRepository
	results ports.ResultService
	clock   *testClock
	svc     ports.VoteService
	topicID int64
}

func newMemoryStack(opts ...VoteOption) *memoryStack {
	s := &memoryStack{clock: newTestClock(t0)}
	s.topics = memory.NewTopicRepository()
	s.topicID = s.topics.Save(domain.Topic{Title: "Pineapple pizza", OptionA: "Yes", OptionB: "No", Status: domain.TopicStatusOngoing})
	s.votes = memory.NewVoteRepository(s.topics)
	s.results = NewResultService(s.votes)
	opts = append([]VoteOption{WithClock(s.clock.Now)}, opts...)
	s.svc = NewVoteService(s.topics, s.votes, s.results, nil, opts...)
	return s
}

func TestVoteService_RevoteScenario(t *testing.T) {
	ctx := context.Background()
	stack := newMemoryStack()
	voter := domain.DeviceVoter("D")
	input := ports.VoteInput{TopicID: stack.topicID, Choice: domain.ChoiceA, Region: "Seoul", Voter: voter}

	first, err := stack.svc.Vote(ctx, input)
	require.NoError(t, err)

	stack.clock.Set(t0.Add(24 * time.Hour))
	input.Choice = domain.ChoiceB
	_, err = stack.svc.Vote(ctx, input)
	assert.ErrorIs(t, err, domain.ErrCooldownActive)

	status, err := stack.svc.CheckStatus(ctx, stack.topicID, voter)
	require.NoError(t, err)
	assert.True(t, status.HasVoted)
	assert.False(t, status.CanVoteAgain)

	stack.clock.Set(t0.Add(8 * 24 * time.Hour))
	second, err := stack.svc.Vote(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.ChoiceB, second.Choice)
	assert.Equal(t, t0.Add(8*24*time.Hour), second.VotedAt)

	tally, err := stack.results.ComputeResults(ctx, stack.topicID)
	require.NoError(t, err)
	assert.Equal(t, domain.TotalCounts{A: 0, B: 1, TotalVotes: 1}, tally.Total)
}

func TestVoteService_SeoulBusanTally(t *testing.T) {
	ctx := context.Background()
	stack := newMemoryStack()
	cast := []struct {
		device string
		choice domain.Choice
		region string
	}{
		{"v1", domain.ChoiceA, "Seoul"},
		{"v2", domain.ChoiceA, "Seoul"},
		{"v3", domain.ChoiceB, "Seoul"},
		{"v4", domain.ChoiceB, "Busan"},
	}
	for _, c := range cast {
		_, err := stack.svc.Vote(ctx, ports.VoteInput{TopicID: stack.topicID, Choice: c.choice, Region: c.region, Voter: domain.DeviceVoter(c.device)})
		require.NoError(t, err)
	}

	tally, err := stack.results.ComputeResults(ctx, stack.topicID)
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.ChoiceCounts{
		"Seoul": {A: 2, B: 1},
		"Busan": {B: 1},
	}, tally.ByRegion)
	assert.Equal(t, domain.TotalCounts{A: 2, B: 2, TotalVotes: 4}, tally.Total)
}

func TestVoteService_ConcurrentVotesAreNotDoubleCounted(t *testing.T) {
	ctx := context.Background()
	stack := newMemoryStack()

	const voters = 40
	const attempts = 5
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		for j := 0; j < attempts; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = stack.svc.Vote(ctx, ports.VoteInput{
					TopicID: stack.topicID,
					Choice:  domain.ChoiceA,
					Region:  fmt.Sprintf("region-%d", i%4),
					Voter:   domain.DeviceVoter(fmt.Sprintf("device-%d", i)),
				})
			}(i)
		}
	}
	wg.Wait()

	tally, err := stack.results.ComputeResults(ctx, stack.topicID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), tally.Total.TotalVotes)
	assert.Len(t, tally.ByRegion, 4)
}

func TestVoteService_UnidentifiedPolicy(t *testing.T) {
	ctx := context.Background()

	allow := newMemoryStack()
	for i := 0; i < 2; i++ {
		_, err := allow.svc.Vote(ctx, ports.VoteInput{TopicID: allow.topicID, Choice: domain.ChoiceA, Region: "Seoul"})
		require.NoError(t, err)
	}
	status, err := allow.svc.CheckStatus(ctx, allow.topicID, domain.VoterIdentity{})
	require.NoError(t, err)
	assert.True(t, status.CanVoteAgain)
	tally, err := allow.results.ComputeResults(ctx, allow.topicID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tally.Total.A)

	reject := newMemoryStack(WithUnidentifiedPolicy(domain.UnidentifiedReject))
	_, err = reject.svc.Vote(ctx, ports.VoteInput{TopicID: reject.topicID, Choice: domain.ChoiceA, Region: "Seoul"})
	assert.ErrorIs(t, err, domain.ErrMissingVoter)
	_, err = reject.svc.CheckStatus(ctx, reject.topicID, domain.VoterIdentity{})
	assert.ErrorIs(t, err, domain.ErrMissingVoter)
}

func TestVoteService_CheckStatusNeverVoted(t *testing.T) {
	stack := newMemoryStack()
	status, err := stack.svc.CheckStatus(context.Background(), stack.topicID, domain.UserVoter(uuid.New()))
	require.NoError(t, err)
	assert.False(t, status.HasVoted)
	assert.True(t, status.CanVoteAgain)

	_, err = stack.svc.CheckStatus(context.Background(), 0, domain.DeviceVoter("d"))
	assert.ErrorIs(t, err, domain.ErrInvalidTopicID)
}

func TestVoteService_CheckStatusUnknownTopic(t *testing.T) {
	stack := newMemoryStack()
	_, err := stack.svc.CheckStatus(context.Background(), stack.topicID+100, domain.DeviceVoter("d"))
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = stack.svc.CheckStatus(context.Background(), stack.topicID+100, domain.VoterIdentity{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoteService_CustomCooldown(t *testing.T) {
	ctx := context.Background()
	stack := newMemoryStack(WithCooldown(time.Hour))
	input := ports.VoteInput{TopicID: stack.topicID, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("d")}

	_, err := stack.svc.Vote(ctx, input)
	require.NoError(t, err)
	stack.clock.Set(t0.Add(time.Hour + time.Second))
	_, err = stack.svc.Vote(ctx, input)
	assert.NoError(t, err)
}

func TestVoteService_ClaimDeviceVotes(t *testing.T) {
	ctx := context.Background()
	stack := newMemoryStack()
	userID := uuid.New()

	_, err := stack.svc.Vote(ctx, ports.VoteInput{TopicID: stack.topicID, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("phone")})
	require.NoError(t, err)

	n, err := stack.svc.ClaimDeviceVotes(ctx, "phone", userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The cooldown follows the vote to its new owner.
	_, err = stack.svc.Vote(ctx, ports.VoteInput{TopicID: stack.topicID, Choice: domain.ChoiceB, Region: "Seoul", Voter: domain.UserVoter(userID)})
	assert.ErrorIs(t, err, domain.ErrCooldownActive)

	_, err = stack.svc.ClaimDeviceVotes(ctx, " ", userID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = stack.svc.ClaimDeviceVotes(ctx, "phone", uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// laggingLedger delays every tally read so concurrent recomputes finish out
// of order unless something serializes them.
type laggingLedger struct {
	*memory.VoteRepository
}

func (l laggingLedger) CountByRegion(ctx context.Context, topicID int64) ([]domain.RegionCount, error) {
	counts, err := l.VoteRepository.CountByRegion(ctx, topicID)
	time.Sleep(time.Duration(rand.IntN(4)) * time.Millisecond)
	return counts, err
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBroadcaster) Publish(_ context.Context, _ int64, e domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *recordingBroadcaster) snapshot() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Event(nil), b.events...)
}

func TestVoteService_LastResultsUpdateMatchesFinalTally(t *testing.T) {
	const rounds = 20
	const voters = 10

	for round := 0; round < rounds; round++ {
		topics := memory.NewTopicRepository()
		topicID := topics.Save(domain.Topic{Title: "Mountains or sea?", OptionA: "Mountains", OptionB: "Sea", Status: domain.TopicStatusOngoing})
		ledger := laggingLedger{memory.NewVoteRepository(topics)}
		sink := &recordingBroadcaster{}
		svc := NewVoteService(topics, ledger, NewResultService(ledger), sink)

		var wg sync.WaitGroup
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.Vote(context.Background(), ports.VoteInput{
					TopicID: topicID,
					Choice:  domain.ChoiceA,
					Region:  "Seoul",
					Voter:   domain.DeviceVoter(fmt.Sprintf("device-%d", i)),
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		require.Eventually(t, func() bool {
			return len(sink.snapshot()) == 2*voters
		}, 2*time.Second, 5*time.Millisecond)

		var totals []int64
		for _, e := range sink.snapshot() {
			if e.Type == domain.EventResultsUpdate {
				totals = append(totals, e.Results.Total.TotalVotes)
			}
		}
		require.Len(t, totals, voters)
		for i := 1; i < len(totals); i++ {
			require.GreaterOrEqual(t, totals[i], totals[i-1], "round %d: snapshot went backwards", round)
		}
		require.Equal(t, int64(voters), totals[len(totals)-1], "round %d: final snapshot is stale", round)
	}
}
