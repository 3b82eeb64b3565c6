package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"reminder-app/src/database"
	"reminder-app/src/domain"

	"github.com/sirupsen/logrus"
)

// ProjectRepository is the Postgres implementation of
// domain.ProjectRepository.
type ProjectRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB, logger *logrus.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	query := `
		INSERT INTO projects (id, user_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.UserID, project.Name, project.Color,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		r.logger.WithError(err).Error("プロジェクトの作成に失敗")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	r.logger.WithField("project_id", project.ID).Info("プロジェクトを作成しました")
	return project, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	query := `SELECT id, user_id, name, color, created_at, updated_at
		FROM projects WHERE id = $1 AND user_id = $2`

	project := &domain.Project{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Color,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		r.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの取得に失敗")
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// List retrieves all projects for a user
func (r *ProjectRepository) List(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT id, user_id, name, color, created_at, updated_at
		FROM projects WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.WithError(err).Error("プロジェクトリストの取得に失敗")
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var project domain.Project
		err := rows.Scan(
			&project.ID, &project.UserID, &project.Name, &project.Color,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return projects, nil
}

// Update applies a partial update to a project
func (r *ProjectRepository) Update(ctx context.Context, userID, id string, name, color *string) (*domain.Project, error) {
	var setParts []string
	var args []interface{}
	argIndex := 1

	if name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *name)
		argIndex++
	}
	if color != nil {
		setParts = append(setParts, fmt.Sprintf("color = $%d", argIndex))
		args = append(args, *color)
		argIndex++
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, userID, id)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, name, color, created_at, updated_at`,
		strings.Join(setParts, ", "), argIndex, argIndex+1)

	project := &domain.Project{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Color,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		r.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの更新に失敗")
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	r.logger.WithField("project_id", id).Info("プロジェクトを更新しました")
	return project, nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの削除に失敗")
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project not found")
	}

	r.logger.WithField("project_id", id).Info("プロジェクトを削除しました")
	return nil
}
