package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/database"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"

	"github.com/sirupsen/logrus"
)

// TokenRepository persists magic link tokens
type TokenRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *database.DB, logger *logrus.Logger) *TokenRepository {
	return &TokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new magic link token
func (r *TokenRepository) Create(ctx context.Context, token *models.MagicLinkToken) error {
	query := `
		INSERT INTO magic_link_tokens (token, email, expires_at, consumed, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		token.Token, token.Email, token.ExpiresAt, token.Consumed, token.CreatedAt,
	)
	if err != nil {
		r.logger.WithError(err).Error("マジックリンクトークンの保存に失敗")
		return fmt.Errorf("failed to create magic link token: %w", err)
	}

	return nil
}

// Consume atomically marks a token as consumed and returns its email.
// 期限切れ・消費済み・存在しないトークンはすべて ErrTokenNotFound になる。
func (r *TokenRepository) Consume(ctx context.Context, token string, now time.Time) (string, error) {
	query := `
		UPDATE magic_link_tokens
		SET consumed = TRUE
		WHERE token = $1 AND consumed = FALSE AND expires_at > $2
		RETURNING email`

	var email string
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(&email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrTokenNotFound
		}
		r.logger.WithError(err).Error("マジックリンクトークンの消費に失敗")
		return "", fmt.Errorf("failed to consume magic link token: %w", err)
	}

	return email, nil
}
