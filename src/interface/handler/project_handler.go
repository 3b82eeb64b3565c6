package handler

import (
	"errors"
	"net/http"

	"reminder-app/src/domain"
	"reminder-app/src/middleware"
	"reminder-app/src/usecase"
	"reminder-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
	validator      *validator.CustomValidator
	logger         *logrus.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectUsecase usecase.ProjectUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectUsecase: projectUsecase,
		validator:      cv,
		logger:         logger,
	}
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	project, err := h.projectUsecase.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Color)
	if err != nil {
		h.logger.WithError(err).Error("プロジェクトの作成に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrInvalidProjectName) {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to create project",
			Message: err.Error(),
		})
		return
	}

	h.logger.WithField("project_id", project.ID).Info("プロジェクトを作成しました")
	c.JSON(http.StatusCreated, toProjectResponseDTO(project))
}

// ListProjects retrieves all projects for the authenticated user
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectUsecase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.WithError(err).Error("プロジェクトリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get projects",
		})
		return
	}

	result := make([]ProjectResponseDTO, len(projects))
	for i := range projects {
		result[i] = toProjectResponseDTO(&projects[i])
	}
	c.JSON(http.StatusOK, gin.H{"projects": result, "total": len(result)})
}

// GetProject retrieves a project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")
	project, err := h.projectUsecase.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrProjectNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to get project",
		})
		return
	}

	c.JSON(http.StatusOK, toProjectResponseDTO(project))
}

// UpdateProject applies a partial update to a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	id := c.Param("id")
	project, err := h.projectUsecase.Update(c.Request.Context(), middleware.UserID(c), id, req.Name, req.Color)
	if err != nil {
		h.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの更新に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrProjectNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, usecase.ErrInvalidProjectName) {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to update project",
			Message: err.Error(),
		})
		return
	}

	h.logger.WithField("project_id", id).Info("プロジェクトを更新しました")
	c.JSON(http.StatusOK, toProjectResponseDTO(project))
}

// DeleteProject deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.projectUsecase.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの削除に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrProjectNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to delete project",
		})
		return
	}

	h.logger.WithField("project_id", id).Info("プロジェクトを削除しました")
	c.Status(http.StatusNoContent)
}

func toProjectResponseDTO(p *domain.Project) ProjectResponseDTO {
	return ProjectResponseDTO{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
