package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"reminder-app/src/database"
	"reminder-app/src/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const reminderColumns = `id, user_id, title, note, category, subcategory, priority,
	project_id, project_name, image_uri, reminder_date, reminder_time,
	status, notification_id, created_at, updated_at`

// ReminderRepository is the Postgres implementation of
// domain.ReminderRepository.
type ReminderRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *database.DB, logger *logrus.Logger) *ReminderRepository {
	return &ReminderRepository{
		db:     db,
		logger: logger,
	}
}

// GetReminders retrieves all reminders for a user
func (r *ReminderRepository) GetReminders(ctx context.Context, userID string) ([]domain.Reminder, error) {
	query := fmt.Sprintf(`SELECT %s FROM reminders WHERE user_id = $1 ORDER BY created_at`, reminderColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.WithError(err).Error("リマインダーリストの取得に失敗")
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// SaveReminders writes a full corrected list back to storage. Only the
// status and updated_at columns can drift during recalculation, so
// only those are rewritten.
func (r *ReminderRepository) SaveReminders(ctx context.Context, userID string, reminders []domain.Reminder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE reminders SET status = $1 WHERE id = $2 AND user_id = $3`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, reminder := range reminders {
		if _, err := stmt.ExecContext(ctx, reminder.Status, reminder.ID, userID); err != nil {
			r.logger.WithError(err).WithField("reminder_id", reminder.ID).Error("ステータスの書き戻しに失敗")
			return fmt.Errorf("failed to save reminder %s: %w", reminder.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.WithField("count", len(reminders)).Info("リマインダーリストを書き戻しました")
	return nil
}

// SaveReminder inserts a new reminder and returns the full updated list
func (r *ReminderRepository) SaveReminder(ctx context.Context, reminder *domain.Reminder) ([]domain.Reminder, error) {
	query := `
		INSERT INTO reminders (id, user_id, title, note, category, subcategory, priority,
			project_id, project_name, image_uri, reminder_date, reminder_time,
			status, notification_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		reminder.ID, reminder.UserID, reminder.Title, reminder.Note,
		reminder.Category, reminder.Subcategory, reminder.Priority,
		reminder.ProjectID, reminder.ProjectName, reminder.ImageURI,
		reminder.ReminderDate, reminder.ReminderTime,
		reminder.Status, reminder.NotificationID,
		reminder.CreatedAt, reminder.UpdatedAt,
	)
	if err != nil {
		r.logger.WithError(err).Error("リマインダーの作成に失敗")
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	r.logger.WithField("reminder_id", reminder.ID).Info("リマインダーを作成しました")
	return r.GetReminders(ctx, reminder.UserID)
}

// UpdateReminder applies a partial patch and returns the full updated list
func (r *ReminderRepository) UpdateReminder(ctx context.Context, userID, id string, patch domain.ReminderPatch) ([]domain.Reminder, error) {
	var setParts []string
	var args []interface{}
	argIndex := 1

	add := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Note != nil {
		add("note", *patch.Note)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Subcategory != nil {
		add("subcategory", *patch.Subcategory)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.ProjectID != nil {
		add("project_id", *patch.ProjectID)
	}
	if patch.ProjectName != nil {
		add("project_name", *patch.ProjectName)
	}
	if patch.ImageURI != nil {
		add("image_uri", *patch.ImageURI)
	}
	if patch.ReminderDate != nil {
		add("reminder_date", *patch.ReminderDate)
	}
	if patch.ReminderTime != nil {
		add("reminder_time", *patch.ReminderTime)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.NotificationID != nil {
		add("notification_id", *patch.NotificationID)
	}

	if len(setParts) == 0 {
		return r.GetReminders(ctx, userID) // 更新するフィールドがない場合
	}

	// updated_atを常に更新
	add("updated_at", time.Now())

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE reminders SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(setParts, ", "), argIndex, argIndex+1)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの更新に失敗")
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("reminder not found")
	}

	r.logger.WithField("reminder_id", id).Info("リマインダーを更新しました")
	return r.GetReminders(ctx, userID)
}

// UpdateReminderStatus sets a reminder's status and returns the full updated list
func (r *ReminderRepository) UpdateReminderStatus(ctx context.Context, userID, id string, status domain.Status) ([]domain.Reminder, error) {
	query := `UPDATE reminders SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id, userID)
	if err != nil {
		r.logger.WithError(err).WithField("reminder_id", id).Error("ステータスの更新に失敗")
		return nil, fmt.Errorf("failed to update reminder status: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("reminder not found")
	}

	r.logger.WithFields(logrus.Fields{
		"reminder_id": id,
		"status":      status,
	}).Info("ステータスを更新しました")
	return r.GetReminders(ctx, userID)
}

// DeleteReminder removes a reminder and returns the full updated list
func (r *ReminderRepository) DeleteReminder(ctx context.Context, userID, id string) ([]domain.Reminder, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの削除に失敗")
		return nil, fmt.Errorf("failed to delete reminder: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("reminder not found")
	}

	r.logger.WithField("reminder_id", id).Info("リマインダーを削除しました")
	return r.GetReminders(ctx, userID)
}

// BulkDeleteReminders removes a set of reminders in one call and
// returns the full updated list. Unknown ids are skipped silently.
func (r *ReminderRepository) BulkDeleteReminders(ctx context.Context, userID string, ids []string) ([]domain.Reminder, error) {
	if len(ids) > 0 {
		query := `DELETE FROM reminders WHERE user_id = $1 AND id = ANY($2)`
		if _, err := r.db.ExecContext(ctx, query, userID, pq.Array(ids)); err != nil {
			r.logger.WithError(err).WithField("count", len(ids)).Error("リマインダーの一括削除に失敗")
			return nil, fmt.Errorf("failed to bulk delete reminders: %w", err)
		}
		r.logger.WithField("count", len(ids)).Info("リマインダーを一括削除しました")
	}

	return r.GetReminders(ctx, userID)
}

// GetUserPreferences loads the user's preferences; a missing row means
// the defaults (reminder alerts on).
func (r *ReminderRepository) GetUserPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	prefs := &domain.Preferences{
		Notifications: domain.NotificationPreferences{ReminderAlerts: true},
	}

	query := `SELECT reminder_alerts FROM user_preferences WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&prefs.Notifications.ReminderAlerts)
	if err != nil {
		if err == sql.ErrNoRows {
			return prefs, nil
		}
		r.logger.WithError(err).WithField("user_id", userID).Error("ユーザー設定の取得に失敗")
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	return prefs, nil
}

func scanReminders(rows *sql.Rows) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		var projectID sql.NullString
		err := rows.Scan(
			&reminder.ID, &reminder.UserID, &reminder.Title, &reminder.Note,
			&reminder.Category, &reminder.Subcategory, &reminder.Priority,
			&projectID, &reminder.ProjectName, &reminder.ImageURI,
			&reminder.ReminderDate, &reminder.ReminderTime,
			&reminder.Status, &reminder.NotificationID,
			&reminder.CreatedAt, &reminder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		if projectID.Valid {
			reminder.ProjectID = &projectID.String
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return reminders, nil
}
