package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type topicKey struct {
	topicID int64
	key     string
}

// record remembers both owners of a vote: the device that cast it and the
// user it belongs to once the device authenticated.
type record struct {
	vote     domain.Vote
	userID   uuid.UUID
	deviceID string
}

// VoteRepository is an in-process ledger. Writes for one (topic, voter) pair
// are serialized by a per-key mutex; mu only guards the maps for the short
// read or mutation itself.
type VoteRepository struct {
	topics ports.TopicCatalog
	locks  *keyedMutex

	mu       sync.RWMutex
	records  map[uuid.UUID]*record
	byUser   map[topicKey]*record
	byDevice map[topicKey]*record
}

func NewVoteRepository(topics ports.TopicCatalog) *VoteRepository {
	return &VoteRepository{
		topics:   topics,
		locks:    newKeyedMutex(),
		records:  make(map[uuid.UUID]*record),
		byUser:   make(map[topicKey]*record),
		byDevice: make(map[topicKey]*record),
	}
}

func (r *VoteRepository) RecordVote(ctx context.Context, vote *domain.Vote, guard ports.VoteGuard) (*domain.Vote, error) {
	if _, err := r.topics.GetByID(ctx, vote.TopicID); err != nil {
		return nil, err
	}

	if vote.Voter.IsZero() {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.insert(vote), nil
	}

	unlock := r.locks.Lock(lockKey(vote.TopicID, vote.Voter))
	defer unlock()

	current, snapshot, owner := r.lookup(vote.TopicID, vote.Voter)

	// A device vote that was handed to a user is also reachable through the
	// user's key, so take that lock too before deciding.
	if current != nil && owner != uuid.Nil && !vote.Voter.IsUser() {
		unlockUser := r.locks.Lock(lockKey(vote.TopicID, domain.UserVoter(owner)))
		defer unlockUser()
		current, snapshot, _ = r.lookup(vote.TopicID, vote.Voter)
	}

	var currentVote *domain.Vote
	if current != nil {
		currentVote = &snapshot
	}
	if guard != nil {
		if err := guard(currentVote); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if current == nil {
		return r.insert(vote), nil
	}

	current.vote.Choice = vote.Choice
	current.vote.Region = vote.Region
	current.vote.VotedAt = vote.VotedAt
	out := current.vote
	return &out, nil
}

// insert must be called with mu held.
func (r *VoteRepository) insert(vote *domain.Vote) *domain.Vote {
	rec := &record{vote: *vote}
	if rec.vote.ID == uuid.Nil {
		rec.vote.ID = uuid.New()
	}
	if id, ok := vote.Voter.UserID(); ok {
		rec.userID = id
		r.byUser[topicKey{vote.TopicID, id.String()}] = rec
	}
	if id, ok := vote.Voter.DeviceID(); ok {
		rec.deviceID = id
		r.byDevice[topicKey{vote.TopicID, id}] = rec
	}
	r.records[rec.vote.ID] = rec
	out := rec.vote
	return &out
}

// lookup returns the voter's record for the topic along with a copy of its
// vote and its owning user, read under mu.
func (r *VoteRepository) lookup(topicID int64, voter domain.VoterIdentity) (*record, domain.Vote, uuid.UUID) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rec *record
	if id, ok := voter.UserID(); ok {
		rec = r.byUser[topicKey{topicID, id.String()}]
	} else if id, ok := voter.DeviceID(); ok {
		rec = r.byDevice[topicKey{topicID, id}]
	}
	if rec == nil {
		return nil, domain.Vote{}, uuid.Nil
	}
	return rec, rec.vote, rec.userID
}

func (r *VoteRepository) FindCurrentVote(_ context.Context, topicID int64, voter domain.VoterIdentity) (*domain.Vote, error) {
	if voter.IsZero() {
		return nil, nil
	}
	rec, v, _ := r.lookup(topicID, voter)
	if rec == nil {
		return nil, nil
	}
	return &v, nil
}

func (r *VoteRepository) ListVotes(_ context.Context, topicID int64) ([]*domain.Vote, error) {
	return r.collect(func(rec *record) bool { return rec.vote.TopicID == topicID }), nil
}

func (r *VoteRepository) ListVotesByVoter(_ context.Context, voter domain.VoterIdentity) ([]*domain.Vote, error) {
	if userID, ok := voter.UserID(); ok {
		return r.collect(func(rec *record) bool { return rec.userID == userID }), nil
	}
	if deviceID, ok := voter.DeviceID(); ok {
		return r.collect(func(rec *record) bool { return rec.deviceID == deviceID }), nil
	}
	return nil, nil
}

func (r *VoteRepository) collect(match func(*record) bool) []*domain.Vote {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Vote
	for _, rec := range r.records {
		if match(rec) {
			v := rec.vote
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VotedAt.Before(out[j].VotedAt) })
	return out
}

func (r *VoteRepository) CountByRegion(_ context.Context, topicID int64) ([]domain.RegionCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type group struct {
		region string
		choice domain.Choice
	}
	counts := make(map[group]int64)
	for _, rec := range r.records {
		if rec.vote.TopicID == topicID {
			counts[group{rec.vote.Region, rec.vote.Choice}]++
		}
	}

	out := make([]domain.RegionCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, domain.RegionCount{Region: g.region, Choice: g.choice, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region == out[j].Region {
			return out[i].Choice < out[j].Choice
		}
		return out[i].Region < out[j].Region
	})
	return out, nil
}

func (r *VoteRepository) CountRegion(_ context.Context, topicID int64, region string) (domain.ChoiceCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var counts domain.ChoiceCounts
	for _, rec := range r.records {
		if rec.vote.TopicID != topicID || rec.vote.Region != region {
			continue
		}
		switch rec.vote.Choice {
		case domain.ChoiceA:
			counts.A++
		case domain.ChoiceB:
			counts.B++
		}
	}
	return counts, nil
}

func (r *VoteRepository) ReassignVotes(_ context.Context, deviceID string, userID uuid.UUID) (int64, error) {
	if deviceID == "" || userID == uuid.Nil {
		return 0, fmt.Errorf("%w: device id and user id are required", domain.ErrValidation)
	}

	r.mu.RLock()
	var candidates []*record
	for _, rec := range r.records {
		if rec.deviceID == deviceID && rec.userID == uuid.Nil {
			candidates = append(candidates, rec)
		}
	}
	r.mu.RUnlock()

	var moved int64
	for _, rec := range candidates {
		if r.reassign(rec, userID) {
			moved++
		}
	}
	return moved, nil
}

func (r *VoteRepository) reassign(rec *record, userID uuid.UUID) bool {
	r.mu.RLock()
	topicID := rec.vote.TopicID
	r.mu.RUnlock()

	// Device key before user key, the same order RecordVote takes them, so a
	// device writer never sees the owner change under its lock.
	unlockDevice := r.locks.Lock(lockKey(topicID, domain.DeviceVoter(rec.deviceID)))
	defer unlockDevice()
	unlock := r.locks.Lock(lockKey(topicID, domain.UserVoter(userID)))
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := topicKey{topicID, userID.String()}
	if rec.userID != uuid.Nil {
		return false
	}
	if _, taken := r.byUser[key]; taken {
		return false
	}
	rec.userID = userID
	rec.vote.Voter = domain.UserVoter(userID)
	r.byUser[key] = rec
	return true
}

func lockKey(topicID int64, voter domain.VoterIdentity) string {
	return fmt.Sprintf("%d|%s", topicID, voter.Key())
}
