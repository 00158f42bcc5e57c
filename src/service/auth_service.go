package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/config"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// アイデンティティプロバイダの識別子
const (
	ProviderMagicLink = "magic_link"
	ProviderBearer    = "bearer"
	ProviderAdmin     = "admin"
)

// authService 認証サービスの実装。メールリンク認証と管理者ログインの
// 両方が同じ Identity 抽象に合流する。
type authService struct {
	tokenRepo  repository.TokenRepositoryInterface
	jwtService JWTServiceInterface
	config     *config.Config
	logger     *logrus.Logger
}

// NewAuthService 認証サービスを作成
func NewAuthService(tokenRepo repository.TokenRepositoryInterface, jwtService JWTServiceInterface, cfg *config.Config, logger *logrus.Logger) AuthServiceInterface {
	return &authService{
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		config:     cfg,
		logger:     logger,
	}
}

// IssueMagicLink パスワードレスログイン用のワンタイムリンクを発行する。
// メール送信自体はこのサービスの責務外で、リンクはログに記録される。
func (s *authService) IssueMagicLink(ctx context.Context, email string) (string, error) {
	token := &models.MagicLinkToken{
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: time.Now().Add(s.config.Auth.MagicLinkTTL),
		Consumed:  false,
		CreatedAt: time.Now(),
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to issue magic link: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.config.Site.BaseURL, url.QueryEscape(token.Token))

	s.logger.WithFields(logrus.Fields{
		"email":      email,
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
		"link":       link,
	}).Info("マジックリンクを発行しました")

	return link, nil
}

// VerifyMagicLink トークンを消費してセッショントークンを発行する。
// 期限切れ・使用済みトークンは repository.ErrTokenNotFound のまま返す。
func (s *authService) VerifyMagicLink(ctx context.Context, token string) (*models.AuthResponse, error) {
	email, err := s.tokenRepo.Consume(ctx, token, time.Now())
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{
		UserID:   email,
		Email:    email,
		Provider: ProviderMagicLink,
	}

	return s.generateAuthResponse(identity)
}

// AdminLogin 管理者資格情報を検証してセッショントークンを発行する。
// パスワードは環境変数のbcryptハッシュと照合する。
func (s *authService) AdminLogin(email, password string) (*models.AuthResponse, error) {
	if s.config.Admin.Email == "" || s.config.Admin.PasswordHash == "" {
		s.logger.Error("管理者資格情報が設定されていません")
		return nil, ErrAdminNotConfigured
	}

	if email != s.config.Admin.Email {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.Admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := &models.Identity{
		UserID:   email,
		Email:    email,
		Provider: ProviderAdmin,
	}

	s.logger.WithField("email", email).Info("管理者がログインしました")
	return s.generateAuthResponse(identity)
}

// generateAuthResponse アイデンティティからトークンレスポンスを組み立てる
func (s *authService) generateAuthResponse(identity *models.Identity) (*models.AuthResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  *identity,
	}, nil
}
