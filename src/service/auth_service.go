package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"reminder-app/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResult holds the outcome of a successful authentication.
type AuthResult struct {
	User         *domain.PublicUser
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // 秒単位
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users     domain.UserRepository
	jwt       JWTService
	logger    *logrus.Logger
	expiresIn time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users domain.UserRepository, jwt JWTService, logger *logrus.Logger, expiresIn time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		logger:    logger,
		expiresIn: expiresIn,
	}
}

// Register creates a new local account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("ユーザー登録が完了しました")
	return s.issueTokens(user)
}

// Login authenticates an email/password pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.WithField("email", email).Warn("ログイン失敗: ユーザーが見つかりません")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("user_id", user.ID).Warn("ログイン失敗: パスワードが一致しません")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		// ログイン自体は成功扱い
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("最終ログイン時刻を記録できませんでした")
	}

	s.logger.WithField("user_id", user.ID).Info("ログインしました")
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return s.issueTokens(user)
}

// GetUser loads a user's public profile.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user.ToPublic(), nil
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user.ToPublic(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.expiresIn.Seconds()),
	}, nil
}
