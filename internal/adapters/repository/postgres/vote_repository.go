package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

const voteColumns = `id, topic_id, choice, region, user_id, device_id, voted_at`

func (r *voteRepository) RecordVote(ctx context.Context, vote *domain.Vote, guard ports.VoteGuard) (*domain.Vote, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if vote.Voter.IsZero() {
		saved, err := insertVote(ctx, tx, vote)
		if err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return saved, nil
	}

	if err := lockVoter(ctx, tx, vote.TopicID, vote.Voter); err != nil {
		return nil, err
	}

	// A device vote that was handed to a user is also written through the
	// user's key. ReassignVotes needs the device lock too, so the owner read
	// here cannot change before commit. Lock order is device, user, row.
	if !vote.Voter.IsUser() {
		owner, err := ownerOf(ctx, tx, vote.TopicID, vote.Voter)
		if err != nil {
			return nil, err
		}
		if owner != uuid.Nil {
			if err := lockVoter(ctx, tx, vote.TopicID, domain.UserVoter(owner)); err != nil {
				return nil, err
			}
		}
	}

	current, err := findVote(ctx, tx, vote.TopicID, vote.Voter, true)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return nil, err
		}
	}

	var saved *domain.Vote
	if current == nil {
		saved, err = insertVote(ctx, tx, vote)
	} else {
		saved, err = updateVote(ctx, tx, current.ID, vote)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

func (r *voteRepository) FindCurrentVote(ctx context.Context, topicID int64, voter domain.VoterIdentity) (*domain.Vote, error) {
	if voter.IsZero() {
		return nil, nil
	}
	return findVote(ctx, r.db, topicID, voter, false)
}

func (r *voteRepository) ListVotes(ctx context.Context, topicID int64) ([]*domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE topic_id = $1 ORDER BY voted_at`
	return r.queryVotes(ctx, query, topicID)
}

func (r *voteRepository) ListVotesByVoter(ctx context.Context, voter domain.VoterIdentity) ([]*domain.Vote, error) {
	if userID, ok := voter.UserID(); ok {
		query := `SELECT ` + voteColumns + ` FROM votes WHERE user_id = $1 ORDER BY voted_at`
		return r.queryVotes(ctx, query, userID)
	}
	if deviceID, ok := voter.DeviceID(); ok {
		query := `SELECT ` + voteColumns + ` FROM votes WHERE device_id = $1 ORDER BY voted_at`
		return r.queryVotes(ctx, query, deviceID)
	}
	return nil, nil
}

func (r *voteRepository) CountByRegion(ctx context.Context, topicID int64) ([]domain.RegionCount, error) {
	query := `
		SELECT region, choice, COUNT(*)
		FROM votes
		WHERE topic_id = $1
		GROUP BY region, choice
		ORDER BY region, choice
	`
	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	var counts []domain.RegionCount
	for rows.Next() {
		var c domain.RegionCount
		if err := rows.Scan(&c.Region, &c.Choice, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}
	return counts, nil
}

func (r *voteRepository) CountRegion(ctx context.Context, topicID int64, region string) (domain.ChoiceCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE choice = 'A'),
			COUNT(*) FILTER (WHERE choice = 'B')
		FROM votes
		WHERE topic_id = $1 AND region = $2
	`
	var counts domain.ChoiceCounts
	if err := r.db.QueryRowContext(ctx, query, topicID, region).Scan(&counts.A, &counts.B); err != nil {
		return domain.ChoiceCounts{}, fmt.Errorf("failed to count region votes: %w", err)
	}
	return counts, nil
}

// ReassignVotes moves one topic per transaction so the advisory locks are
// held only while that topic's row changes hands.
func (r *voteRepository) ReassignVotes(ctx context.Context, deviceID string, userID uuid.UUID) (int64, error) {
	if deviceID == "" || userID == uuid.Nil {
		return 0, fmt.Errorf("%w: device id and user id are required", domain.ErrValidation)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT topic_id FROM votes WHERE device_id = $1 AND user_id IS NULL ORDER BY topic_id`, deviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to list device votes: %w", err)
	}
	var topicIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan topic id: %w", err)
		}
		topicIDs = append(topicIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate device votes: %w", err)
	}

	var moved int64
	for _, topicID := range topicIDs {
		n, err := r.reassignTopic(ctx, topicID, deviceID, userID)
		if err != nil {
			return moved, err
		}
		moved += n
	}
	return moved, nil
}

func (r *voteRepository) reassignTopic(ctx context.Context, topicID int64, deviceID string, userID uuid.UUID) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Device lock first, matching RecordVote, so the owner a device writer
	// reads stays fixed until it commits.
	if err := lockVoter(ctx, tx, topicID, domain.DeviceVoter(deviceID)); err != nil {
		return 0, err
	}
	if err := lockVoter(ctx, tx, topicID, domain.UserVoter(userID)); err != nil {
		return 0, err
	}

	query := `
		UPDATE votes SET user_id = $1
		WHERE topic_id = $2 AND device_id = $3 AND user_id IS NULL
		AND NOT EXISTS (SELECT 1 FROM votes WHERE topic_id = $2 AND user_id = $1)
	`
	res, err := tx.ExecContext(ctx, query, userID, topicID, deviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to reassign vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

func (r *voteRepository) queryVotes(ctx context.Context, query string, args ...any) ([]*domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}
	return votes, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func lockVoter(ctx context.Context, tx *sql.Tx, topicID int64, voter domain.VoterIdentity) error {
	key := fmt.Sprintf("%d|%s", topicID, voter.Key())
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("failed to lock voter: %w", err)
	}
	return nil
}

func voterFilter(voter domain.VoterIdentity) (string, any) {
	if id, ok := voter.UserID(); ok {
		return "user_id", id
	}
	id, _ := voter.DeviceID()
	return "device_id", id
}

func ownerOf(ctx context.Context, tx *sql.Tx, topicID int64, voter domain.VoterIdentity) (uuid.UUID, error) {
	column, value := voterFilter(voter)
	query := `SELECT user_id FROM votes WHERE topic_id = $1 AND ` + column + ` = $2`
	var owner uuid.NullUUID
	err := tx.QueryRowContext(ctx, query, topicID, value).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to get vote owner: %w", err)
	}
	if !owner.Valid {
		return uuid.Nil, nil
	}
	return owner.UUID, nil
}

func findVote(ctx context.Context, q querier, topicID int64, voter domain.VoterIdentity, forUpdate bool) (*domain.Vote, error) {
	column, value := voterFilter(voter)
	query := `SELECT ` + voteColumns + ` FROM votes WHERE topic_id = $1 AND ` + column + ` = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	v, err := scanVote(q.QueryRowContext(ctx, query, topicID, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current vote: %w", err)
	}
	return v, nil
}

func insertVote(ctx context.Context, tx *sql.Tx, vote *domain.Vote) (*domain.Vote, error) {
	var userID uuid.NullUUID
	var deviceID sql.NullString
	if id, ok := vote.Voter.UserID(); ok {
		userID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if id, ok := vote.Voter.DeviceID(); ok {
		deviceID = sql.NullString{String: id, Valid: true}
	}
	id := vote.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO votes (id, topic_id, choice, region, user_id, device_id, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + voteColumns
	saved, err := scanVote(tx.QueryRowContext(ctx, query,
		id, vote.TopicID, vote.Choice, vote.Region, userID, deviceID, vote.VotedAt))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return saved, nil
}

func updateVote(ctx context.Context, tx *sql.Tx, id uuid.UUID, vote *domain.Vote) (*domain.Vote, error) {
	query := `
		UPDATE votes SET choice = $2, region = $3, voted_at = $4
		WHERE id = $1
		RETURNING ` + voteColumns
	saved, err := scanVote(tx.QueryRowContext(ctx, query, id, vote.Choice, vote.Region, vote.VotedAt))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return saved, nil
}

func scanVote(s scanner) (*domain.Vote, error) {
	var (
		v        domain.Vote
		userID   uuid.NullUUID
		deviceID sql.NullString
	)
	if err := s.Scan(&v.ID, &v.TopicID, &v.Choice, &v.Region, &userID, &deviceID, &v.VotedAt); err != nil {
		return nil, err
	}
	switch {
	case userID.Valid:
		v.Voter = domain.UserVoter(userID.UUID)
	case deviceID.Valid:
		v.Voter = domain.DeviceVoter(deviceID.String)
	}
	return &v, nil
}

func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return domain.ErrTopicNotFound
		case pqUniqueViolation:
			return fmt.Errorf("%w: vote already recorded", domain.ErrConflict)
		}
	}
	return fmt.Errorf("failed to save vote: %w", err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
