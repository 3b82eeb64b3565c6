package service

import (
	"fmt"
	"time"

	"reminder-app/src/config"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims JWT内のカスタムクレーム
type JWTClaims struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// JWTService JWT管理サービスのインターフェース
type JWTService interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateAccessToken(tokenString string) (string, error)
	ValidateRefreshToken(tokenString string) (*JWTClaims, error)
}

// jwtService JWT管理サービスの実装
type jwtService struct {
	config *config.Config
}

// NewJWTService JWT管理サービスを作成
func NewJWTService(cfg *config.Config) JWTService {
	return &jwtService{config: cfg}
}

// GenerateAccessToken アクセストークンを生成
func (s *jwtService) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, "access", s.config.Auth.JWTExpiresIn)
}

// GenerateRefreshToken リフレッシュトークンを生成
func (s *jwtService) GenerateRefreshToken(userID string) (string, error) {
	return s.generate(userID, "refresh", s.config.Auth.RefreshExpiresIn)
}

func (s *jwtService) generate(userID, tokenType string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "reminder-app",
			Subject:   fmt.Sprintf("user:%s", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Auth.JWTSecret))
}

// ValidateAccessToken アクセストークンを検証してユーザーIDを返す
func (s *jwtService) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Type != "access" {
		return "", fmt.Errorf("invalid token type")
	}
	return claims.UserID, nil
}

// ValidateRefreshToken リフレッシュトークンを検証
func (s *jwtService) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, fmt.Errorf("invalid token type")
	}
	return claims, nil
}

func (s *jwtService) parse(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
