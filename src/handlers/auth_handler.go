package handlers

import (
	"errors"
	"net/http"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuthHandler represents the auth handler for both identity providers
// and the admin login
type AuthHandler struct {
	service  service.AuthServiceInterface
	sessions *session.Store
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service service.AuthServiceInterface, sessions *session.Store, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// IssueMagicLink issues a passwordless login link
// @Summary Issue a magic link
// @Description Issue a single-use passwordless login link for the given email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.MagicLinkRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/auth/magic-link [post]
func (h *AuthHandler) IssueMagicLink(c *gin.Context) {
	var req models.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	// リンク自体はメールで届く想定でサービス側がログに記録する。
	// レスポンスには含めない。
	if _, err := h.service.IssueMagicLink(c.Request.Context(), req.Email); err != nil {
		h.logger.WithError(err).Error("マジックリンクの発行に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue magic link"})
		return
	}

	// ログイン後の戻り先をメールアドレス単位で記録しておく
	if req.ReturnPath != "" {
		h.sessions.SetReturnPath(req.Email, req.ReturnPath)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Magic link sent"})
}

// VerifyMagicLink consumes a magic link token and starts a session
// @Summary Verify a magic link
// @Tags auth
// @Produce json
// @Param token query string true "Magic link token"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/verify [get]
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token parameter is required"})
		return
	}

	auth, err := h.service.VerifyMagicLink(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			h.logger.Warn("無効または期限切れのマジックリンクトークン")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		h.logger.WithError(err).Error("マジックリンクの検証に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify magic link"})
		return
	}

	// セッションを開始してアイデンティティをキャッシュする
	sessionID := uuid.NewString()
	h.sessions.Init(sessionID, &auth.Identity)

	// 記録済みの戻り先があれば一度だけ返す
	redirectTo := "/"
	if path, ok := h.sessions.ReturnPath(auth.Identity.Email); ok {
		redirectTo = path
	}

	h.logger.WithFields(logrus.Fields{
		"user_id":  auth.Identity.UserID,
		"provider": auth.Identity.Provider,
	}).Info("マジックリンクでログインしました")

	c.JSON(http.StatusOK, gin.H{
		"token":       auth.Token,
		"expires_at":  auth.ExpiresAt,
		"identity":    auth.Identity,
		"session_id":  sessionID,
		"redirect_to": redirectTo,
	})
}

// Logout clears the cached session
// @Summary Sign out
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.sessions.Clear(req.SessionID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminLogin authenticates the administrator
// @Summary Admin login
// @Description Authenticate against the configured admin credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	auth, err := h.service.AdminLogin(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.logger.WithField("client_ip", c.ClientIP()).Warn("管理者ログインに失敗")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, service.ErrAdminNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin login is not configured"})
		default:
			h.logger.WithError(err).Error("管理者ログイン処理に失敗")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	c.JSON(http.StatusOK, auth)
}
