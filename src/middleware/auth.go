package middleware

import (
	"net/http"
	"strings"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/logger"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IdentityKey Ginコンテキストに設定される認証済みアイデンティティのキー
const IdentityKey = "identity"

// AuthMiddleware Bearerトークンを検証して認証済みアイデンティティを
// コンテキストに設定するmiddleware。どのプロバイダで発行されたトークンかは
// 下流には見えない。
func AuthMiddleware(jwtService service.JWTServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authorizationヘッダーを取得
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.WithField("client_ip", c.ClientIP()).Warn("認証失敗: Authorizationヘッダーがありません")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Bearer tokenの形式をチェック
		if !strings.HasPrefix(authHeader, "Bearer ") {
			logger.WithField("client_ip", c.ClientIP()).Warn("認証失敗: Bearer tokenの形式が正しくありません")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			logger.WithField("client_ip", c.ClientIP()).Warn("認証失敗: tokenが空です")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is empty"})
			c.Abort()
			return
		}

		identity, err := jwtService.ValidateToken(token)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"client_ip": c.ClientIP(),
				"error":     err.Error(),
			}).Warn("認証失敗: 無効なトークン")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)

		logger.WithFields(logrus.Fields{
			"client_ip": c.ClientIP(),
			"user_id":   identity.UserID,
			"provider":  identity.Provider,
		}).Info("認証成功")
		c.Next()
	}
}

// AdminOnlyMiddleware 管理者プロバイダのアイデンティティのみ許可する
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.Provider != service.ProviderAdmin {
			logger.WithField("client_ip", c.ClientIP()).Warn("管理者権限のないアクセスを拒否")
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity コンテキストから認証済みアイデンティティを取り出す
func GetIdentity(c *gin.Context) (*models.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok
}
