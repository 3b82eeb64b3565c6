package handler

import (
	"errors"
	"net/http"

	"reminder-app/src/middleware"
	"reminder-app/src/service"
	"reminder-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cv *validator.CustomValidator, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   cv,
		logger:      logger,
	}
}

// Register 新規ユーザー登録
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequestDTO
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

	result, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Error("ユーザー登録に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) {
			status = http.StatusConflict
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to register",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, toAuthResponseDTO(result))
}

// Login メールアドレスとパスワードでログイン
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrAccountDeactivated) {
			status = http.StatusForbidden
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Authentication failed",
		})
		return
	}

	c.JSON(http.StatusOK, toAuthResponseDTO(result))
}

// Refresh リフレッシュトークンで新しいトークンペアを発行
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponseDTO{
			Error: "Invalid refresh token",
		})
		return
	}

	c.JSON(http.StatusOK, toAuthResponseDTO(result))
}

// Me 認証済みユーザーのプロフィールを返す
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponseDTO{
			Error: "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

func toAuthResponseDTO(result *service.AuthResult) AuthResponseDTO {
	return AuthResponseDTO{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}
}
