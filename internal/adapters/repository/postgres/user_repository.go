package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, phone_number, nickname, nickname_changed_at, verified_region, created_at`

func (r *UserRepository) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1 AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRowContext(ctx, query, phoneNumber))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (phone_number, nickname, verified_region)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, user.PhoneNumber, user.Nickname, user.VerifiedRegion).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: phone number already registered", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateNickname locks the row so two concurrent changes cannot both pass
// the guard.
func (r *UserRepository) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string, changedAt time.Time, guard ports.UserGuard) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	current, err := r.scanOne(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return nil, err
		}
	}

	update := `UPDATE users SET nickname = $2, nickname_changed_at = $3 WHERE id = $1 RETURNING ` + userColumns
	updated, err := r.scanOne(tx.QueryRowContext(ctx, update, id, nickname, changedAt))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) SetVerifiedRegion(ctx context.Context, id uuid.UUID, region string) (*domain.User, error) {
	query := `UPDATE users SET verified_region = $2 WHERE id = $1 AND deleted_at IS NULL RETURNING ` + userColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, region))
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var changedAt sql.NullTime
	err := row.Scan(&user.ID, &user.PhoneNumber, &user.Nickname, &changedAt, &user.VerifiedRegion, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if changedAt.Valid {
		t := changedAt.Time
		user.NicknameChangedAt = &t
	}
	return user, nil
}
