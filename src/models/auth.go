package models

import (
	"time"
)

// Identity 認証済みユーザーの抽象。どのプロバイダ経由で認証されたかに
// かかわらず、下流のコードはこの型だけに依存する。
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider"`
}

// MagicLinkToken represents a single-use passwordless login token
type MagicLinkToken struct {
	Token     string    `json:"token" db:"token"`
	Email     string    `json:"email" db:"email"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Consumed  bool      `json:"consumed" db:"consumed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MagicLinkRequest represents the request payload for issuing a magic link.
// return_path はログイン完了後にクライアントが戻るパス。
type MagicLinkRequest struct {
	Email      string `json:"email" binding:"required,email"`
	ReturnPath string `json:"return_path,omitempty"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  Identity  `json:"identity"`
}

// AdminLoginRequest represents the request payload for admin login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
