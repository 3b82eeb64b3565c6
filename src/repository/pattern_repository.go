package repository

import (
	"context"
	"fmt"

	"reminder-app/src/database"
	"reminder-app/src/domain"

	"github.com/sirupsen/logrus"
)

// PatternRepository is the Postgres implementation of
// domain.PatternRepository.
type PatternRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewPatternRepository creates a new pattern repository
func NewPatternRepository(db *database.DB, logger *logrus.Logger) *PatternRepository {
	return &PatternRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves the user's discovered patterns, most frequent first
func (r *PatternRepository) List(ctx context.Context, userID string) ([]domain.Pattern, error) {
	query := `SELECT id, user_id, title, category, occurrences, first_seen, last_seen
		FROM patterns WHERE user_id = $1 ORDER BY occurrences DESC, title`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.WithError(err).Error("パターンリストの取得に失敗")
		return nil, fmt.Errorf("failed to get patterns: %w", err)
	}
	defer rows.Close()

	var patterns []domain.Pattern
	for rows.Next() {
		var pattern domain.Pattern
		err := rows.Scan(
			&pattern.ID, &pattern.UserID, &pattern.Title, &pattern.Category,
			&pattern.Occurrences, &pattern.FirstSeen, &pattern.LastSeen,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return patterns, nil
}

// Replace atomically swaps the user's stored pattern set for a freshly
// derived one.
func (r *PatternRepository) Replace(ctx context.Context, userID string, patterns []domain.Pattern) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM patterns WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear patterns: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO patterns (id, user_id, title, category, occurrences, first_seen, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, pattern := range patterns {
		_, err := stmt.ExecContext(ctx,
			pattern.ID, pattern.UserID, pattern.Title, pattern.Category,
			pattern.Occurrences, pattern.FirstSeen, pattern.LastSeen,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(patterns),
	}).Info("パターンを再生成しました")
	return nil
}
