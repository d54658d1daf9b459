package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type topicRepository struct {
	db *sql.DB
}

// NewTopicRepository reads the topic catalog tables. Topics are written by
// the catalog's own tooling; this adapter only exposes the read side.
func NewTopicRepository(db *sql.DB) ports.TopicCatalog {
	return &topicRepository{
		db: db,
	}
}

const topicColumns = `id, title, option_a, option_a_tags, option_b, option_b_tags, image_url, status`

func (r *topicRepository) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE id = $1`
	topic, err := scanTopic(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

func (r *topicRepository) GetCurrent(ctx context.Context) (*domain.Topic, error) {
	query := `
		SELECT ` + topicColumns + `
		FROM topics
		WHERE status = $1
		ORDER BY id DESC
		LIMIT 1
	`
	topic, err := scanTopic(r.db.QueryRowContext(ctx, query, domain.TopicStatusOngoing))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get current topic: %w", err)
	}
	return topic, nil
}

func (r *topicRepository) ListByStatus(ctx context.Context, status domain.TopicStatus) ([]*domain.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE status = $1 ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var topics []*domain.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return topics, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTopic(s scanner) (*domain.Topic, error) {
	var t domain.Topic
	err := s.Scan(&t.ID, &t.Title, &t.OptionA, &t.OptionATags, &t.OptionB, &t.OptionBTags, &t.ImageURL, &t.Status)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
