package service

import (
	"context"
	"errors"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
)

var (
	// ErrForbidden 認証済みだがリソースの所有者ではない
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials 管理者ログインの資格情報が一致しない
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminNotConfigured 管理者資格情報が環境変数に設定されていない
	ErrAdminNotConfigured = errors.New("admin credentials not configured")
	// ErrASINNotFound URLからASINを抽出できなかった
	ErrASINNotFound = errors.New("asin not found")
)

// BookServiceInterface defines the interface for book service
type BookServiceInterface interface {
	CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
	ListBooks(ctx context.Context, filter *models.BookFilter) ([]models.Book, error)
}

// MemoServiceInterface defines the interface for memo service
type MemoServiceInterface interface {
	CreateMemo(ctx context.Context, identity *models.Identity, req *models.CreateMemoRequest) (*models.Memo, error)
	GetMemo(ctx context.Context, id int) (*models.Memo, error)
	ListMemos(ctx context.Context, filter *models.MemoFilter) ([]models.Memo, int, error)
	UpdateMemo(ctx context.Context, identity *models.Identity, id int, req *models.UpdateMemoRequest) (*models.Memo, error)
	DeleteMemo(ctx context.Context, identity *models.Identity, id int) error
}

// StoreServiceInterface defines the interface for store service
type StoreServiceInterface interface {
	CreateStore(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, error)
	GetStore(ctx context.Context, id int) (*models.Store, error)
	ListStores(ctx context.Context, filter *models.StoreFilter) ([]models.Store, error)
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListCategoryTags(ctx context.Context) ([]models.CategoryTag, error)
}

// AmazonServiceInterface defines the interface for ASIN resolution
type AmazonServiceInterface interface {
	ResolveASIN(ctx context.Context, rawURL string) (string, error)
	CoverImageURL(asin string) string
}

// AuthServiceInterface defines the interface for the auth service
type AuthServiceInterface interface {
	IssueMagicLink(ctx context.Context, email string) (string, error)
	VerifyMagicLink(ctx context.Context, token string) (*models.AuthResponse, error)
	AdminLogin(email, password string) (*models.AuthResponse, error)
}

// JWTServiceInterface defines the interface for JWT management
type JWTServiceInterface interface {
	GenerateToken(identity *models.Identity) (string, time.Time, error)
	ValidateToken(tokenString string) (*models.Identity, error)
}
