package handler

import (
	"net/http"

	"reminder-app/src/domain"
	"reminder-app/src/middleware"
	"reminder-app/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PatternHandler handles HTTP requests for discovered patterns
type PatternHandler struct {
	patternUsecase usecase.PatternUsecase
	logger         *logrus.Logger
}

// NewPatternHandler creates a new pattern handler
func NewPatternHandler(patternUsecase usecase.PatternUsecase, logger *logrus.Logger) *PatternHandler {
	return &PatternHandler{
		patternUsecase: patternUsecase,
		logger:         logger,
	}
}

// ListPatterns retrieves the user's discovered patterns
func (h *PatternHandler) ListPatterns(c *gin.Context) {
	patterns, err := h.patternUsecase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.WithError(err).Error("パターンリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get patterns",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patterns": toPatternResponseDTOs(patterns), "total": len(patterns)})
}

// RefreshPatterns re-derives patterns from the reminder history
func (h *PatternHandler) RefreshPatterns(c *gin.Context) {
	patterns, err := h.patternUsecase.Refresh(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.WithError(err).Error("パターンの再生成に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to refresh patterns",
		})
		return
	}

	h.logger.WithField("count", len(patterns)).Info("パターンを再生成しました")
	c.JSON(http.StatusOK, gin.H{"patterns": toPatternResponseDTOs(patterns), "total": len(patterns)})
}

func toPatternResponseDTOs(patterns []domain.Pattern) []PatternResponseDTO {
	result := make([]PatternResponseDTO, len(patterns))
	for i, p := range patterns {
		result[i] = PatternResponseDTO{
			ID:          p.ID,
			Title:       p.Title,
			Category:    p.Category.String(),
			Occurrences: p.Occurrences,
			FirstSeen:   p.FirstSeen,
			LastSeen:    p.LastSeen,
		}
	}
	return result
}
