package service

import (
	"fmt"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/config"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims JWT内のカスタムクレーム
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// jwtService JWT管理サービスの実装
type jwtService struct {
	config *config.Config
}

// NewJWTService JWT管理サービスを作成
func NewJWTService(cfg *config.Config) JWTServiceInterface {
	return &jwtService{config: cfg}
}

// GenerateToken アイデンティティに対するアクセストークンを生成
func (s *jwtService) GenerateToken(identity *models.Identity) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.config.Auth.JWTExpiresIn)
	claims := &JWTClaims{
		UserID:   identity.UserID,
		Email:    identity.Email,
		Provider: identity.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "ichidan-dokusho",
			Subject:   fmt.Sprintf("user:%s", identity.UserID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken トークンを検証してアイデンティティを返す
func (s *jwtService) ValidateToken(tokenString string) (*models.Identity, error) {
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
		return &models.Identity{
			UserID:   claims.UserID,
			Email:    claims.Email,
			Provider: claims.Provider,
		}, nil
	}

	return nil, fmt.Errorf("invalid token")
}
