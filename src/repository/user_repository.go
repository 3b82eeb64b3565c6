package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"reminder-app/src/database"
	"reminder-app/src/domain"

	"github.com/sirupsen/logrus"
)

// UserRepository is the Postgres implementation of
// domain.UserRepository.
type UserRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.WithError(err).Error("ユーザーの作成に失敗")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.WithField("user_id", user.ID).Info("ユーザーを作成しました")
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, at, at, id); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Error("最終ログイン時刻の更新に失敗")
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_active, last_login_at, created_at, updated_at
		FROM users WHERE %s = $1`, column)

	user := &domain.User{}
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &lastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		r.logger.WithError(err).Error("ユーザーの取得に失敗")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Time
	}

	return user, nil
}
