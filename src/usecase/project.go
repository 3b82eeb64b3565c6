package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"reminder-app/src/domain"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name is required and must be less than 100 characters")
)

// ProjectUsecase defines the interface for project business logic
type ProjectUsecase interface {
	Create(ctx context.Context, userID, name, color string) (*domain.Project, error)
	Get(ctx context.Context, userID, id string) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, userID, id string, name, color *string) (*domain.Project, error)
	Delete(ctx context.Context, userID, id string) error
}

type projectUsecase struct {
	repo domain.ProjectRepository
	now  func() time.Time
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(repo domain.ProjectRepository, now func() time.Time) ProjectUsecase {
	if now == nil {
		now = time.Now
	}
	return &projectUsecase{repo: repo, now: now}
}

func (u *projectUsecase) Create(ctx context.Context, userID, name, color string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" || len(name) > 100 {
		return nil, ErrInvalidProjectName
	}

	now := u.now()
	project := &domain.Project{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, project)
}

func (u *projectUsecase) Get(ctx context.Context, userID, id string) (*domain.Project, error) {
	project, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		if strings.Contains(err.Error(), "project not found") {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return u.repo.List(ctx, userID)
}

func (u *projectUsecase) Update(ctx context.Context, userID, id string, name, color *string) (*domain.Project, error) {
	if name != nil && (strings.TrimSpace(*name) == "" || len(*name) > 100) {
		return nil, ErrInvalidProjectName
	}

	project, err := u.repo.Update(ctx, userID, id, name, color)
	if err != nil {
		if strings.Contains(err.Error(), "project not found") {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) Delete(ctx context.Context, userID, id string) error {
	err := u.repo.Delete(ctx, userID, id)
	if err != nil && strings.Contains(err.Error(), "project not found") {
		return ErrProjectNotFound
	}
	return err
}
