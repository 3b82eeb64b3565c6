package handler

import (
	"errors"
	"net/http"

	"reminder-app/src/domain"
	"reminder-app/src/middleware"
	"reminder-app/src/security"
	"reminder-app/src/usecase"
	"reminder-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReminderHandler handles HTTP requests for reminder operations
type ReminderHandler struct {
	stores    *usecase.StoreManager
	validator *validator.CustomValidator
	sanitizer *security.InputSanitizer
	logger    *logrus.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(stores *usecase.StoreManager, cv *validator.CustomValidator, sanitizer *security.InputSanitizer, logger *logrus.Logger) *ReminderHandler {
	return &ReminderHandler{
		stores:    stores,
		validator: cv,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// CreateReminder creates a new reminder
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req CreateReminderRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
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

	store := h.stores.ForUser(middleware.UserID(c))
	input := usecase.CreateReminderInput{
		Title:        req.Title,
		Note:         req.Note,
		Category:     domain.Category(req.Category),
		Subcategory:  req.Subcategory,
		Priority:     domain.Priority(req.Priority),
		ProjectID:    req.ProjectID,
		ProjectName:  req.ProjectName,
		ImageURI:     req.ImageURI,
		ReminderDate: req.ReminderDate,
		ReminderTime: req.ReminderTime,
	}

	reminder, err := store.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.WithError(err).Error("リマインダーの作成に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrInvalidTitle) || errors.Is(err, usecase.ErrInvalidCategory) ||
			errors.Is(err, usecase.ErrInvalidPriority) || errors.Is(err, usecase.ErrInvalidSchedule) {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to create reminder",
			Message: err.Error(),
		})
		return
	}

	h.logger.WithField("reminder_id", reminder.ID).Info("リマインダーを作成しました")
	c.JSON(http.StatusCreated, toReminderResponseDTO(reminder))
}

// ListReminders returns the filtered and sorted reminder view
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	var filterDTO ReminderFilterDTO
	if err := c.ShouldBindQuery(&filterDTO); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		})
		return
	}

	if err := h.sanitizer.ValidateSearchQuery(filterDTO.Search); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid search query",
			Message: err.Error(),
		})
		return
	}
	if err := h.sanitizer.ValidateDateRange(filterDTO.DateFrom, filterDTO.DateTo); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid date range",
			Message: err.Error(),
		})
		return
	}

	store := h.stores.ForUser(middleware.UserID(c))
	if err := store.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error:   "Failed to load reminders",
			Message: store.Error(),
		})
		return
	}

	view := store.View(toDomainFilter(filterDTO, h.sanitizer), toDomainSort(filterDTO))

	c.JSON(http.StatusOK, ReminderListResponseDTO{
		Reminders: toReminderResponseDTOs(view),
		Total:     len(view),
	})
}

// GetStats returns aggregate counts over the recalculated list
func (h *ReminderHandler) GetStats(c *gin.Context) {
	store := h.stores.ForUser(middleware.UserID(c))
	if err := store.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error:   "Failed to load reminders",
			Message: store.Error(),
		})
		return
	}

	stats := store.Stats()
	c.JSON(http.StatusOK, StatsResponseDTO{
		Total:    stats.Total,
		Upcoming: stats.Upcoming,
		Done:     stats.Done,
		Overdue:  stats.Overdue,
	})
}

// GetReminder retrieves a reminder by ID
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	store := h.stores.ForUser(middleware.UserID(c))
	if err := store.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error:   "Failed to load reminders",
			Message: store.Error(),
		})
		return
	}

	reminder := store.GetByID(c.Param("id"))
	if reminder == nil {
		c.JSON(http.StatusNotFound, ErrorResponseDTO{
			Error: "Reminder not found",
		})
		return
	}

	c.JSON(http.StatusOK, toReminderResponseDTO(reminder))
}

// UpdateReminder applies a partial update to a reminder
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	var req UpdateReminderRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
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
	store := h.stores.ForUser(middleware.UserID(c))

	reminder, err := store.Update(c.Request.Context(), id, toDomainPatch(req))
	if err != nil {
		h.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの更新に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrReminderNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to update reminder",
			Message: err.Error(),
		})
		return
	}

	h.logger.WithField("reminder_id", id).Info("リマインダーを更新しました")
	c.JSON(http.StatusOK, toReminderResponseDTO(reminder))
}

// DeleteReminder deletes a reminder
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id := c.Param("id")
	store := h.stores.ForUser(middleware.UserID(c))

	if err := store.Delete(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの削除に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrReminderNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to delete reminder",
		})
		return
	}

	h.logger.WithField("reminder_id", id).Info("リマインダーを削除しました")
	c.Status(http.StatusNoContent)
}

// MarkAsDone marks a reminder as done
func (h *ReminderHandler) MarkAsDone(c *gin.Context) {
	id := c.Param("id")
	store := h.stores.ForUser(middleware.UserID(c))

	if err := store.MarkAsDone(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの完了処理に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrReminderNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to mark reminder as done",
		})
		return
	}

	h.logger.WithField("reminder_id", id).Info("リマインダーを完了にしました")
	c.Status(http.StatusNoContent)
}

// BulkDelete deletes a set of reminders in one call
func (h *ReminderHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	store := h.stores.ForUser(middleware.UserID(c))
	if err := store.BulkDelete(c.Request.Context(), req.IDs); err != nil {
		h.logger.WithError(err).WithField("count", len(req.IDs)).Error("リマインダーの一括削除に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to bulk delete reminders",
		})
		return
	}

	h.logger.WithField("count", len(req.IDs)).Info("リマインダーを一括削除しました")
	c.Status(http.StatusNoContent)
}

// Helper methods for conversion

func toReminderResponseDTO(r *domain.Reminder) ReminderResponseDTO {
	return ReminderResponseDTO{
		ID:             r.ID,
		Title:          r.Title,
		Note:           r.Note,
		Category:       r.Category.String(),
		Subcategory:    r.Subcategory,
		Priority:       r.Priority.String(),
		ProjectID:      r.ProjectID,
		ProjectName:    r.ProjectName,
		ImageURI:       r.ImageURI,
		ReminderDate:   r.ReminderDate,
		ReminderTime:   r.ReminderTime,
		Status:         r.Status.String(),
		NotificationID: r.NotificationID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toReminderResponseDTOs(reminders []domain.Reminder) []ReminderResponseDTO {
	result := make([]ReminderResponseDTO, len(reminders))
	for i := range reminders {
		result[i] = toReminderResponseDTO(&reminders[i])
	}
	return result
}

func toDomainFilter(dto ReminderFilterDTO, sanitizer *security.InputSanitizer) domain.FilterState {
	filter := domain.DefaultFilter()

	if dto.Status != "" {
		filter.Status = domain.StatusFilter(dto.Status)
	}
	if dto.Category != "" {
		filter.Category = domain.CategoryFilter(dto.Category)
	}
	if dto.ProjectID != "" {
		projectID := dto.ProjectID
		filter.ProjectID = &projectID
	}
	if dto.DateFrom != "" {
		from := dto.DateFrom
		filter.DateFrom = &from
	}
	if dto.DateTo != "" {
		to := dto.DateTo
		filter.DateTo = &to
	}
	filter.Search = sanitizer.SanitizeSearchQuery(dto.Search)

	return filter
}

func toDomainSort(dto ReminderFilterDTO) domain.SortState {
	sortState := domain.DefaultSort()
	if dto.SortBy != "" {
		sortState.Key = domain.SortKey(dto.SortBy)
	}
	sortState.Descending = dto.Order == "desc"
	return sortState
}

func toDomainPatch(req UpdateReminderRequestDTO) domain.ReminderPatch {
	patch := domain.ReminderPatch{
		Title:        req.Title,
		Note:         req.Note,
		Subcategory:  req.Subcategory,
		ProjectID:    req.ProjectID,
		ProjectName:  req.ProjectName,
		ImageURI:     req.ImageURI,
		ReminderDate: req.ReminderDate,
		ReminderTime: req.ReminderTime,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		patch.Category = &category
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	return patch
}
