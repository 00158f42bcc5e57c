package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrMemoNotFound  = errors.New("memo not found")
	ErrStoreNotFound = errors.New("store not found")
	ErrTokenNotFound = errors.New("token not found")
)

// BookRepositoryInterface defines the interface for book repository
type BookRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	List(ctx context.Context, filter *models.BookFilter) ([]models.Book, error)
}

// MemoRepositoryInterface defines the interface for memo repository
type MemoRepositoryInterface interface {
	Create(ctx context.Context, userID string, req *models.CreateMemoRequest) (*models.Memo, error)
	GetByID(ctx context.Context, id int) (*models.Memo, error)
	List(ctx context.Context, filter *models.MemoFilter) ([]models.Memo, int, error)
	Update(ctx context.Context, id int, req *models.UpdateMemoRequest) (*models.Memo, error)
	Delete(ctx context.Context, id int) error
}

// StoreRepositoryInterface defines the interface for store repository
type StoreRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, error)
	GetByID(ctx context.Context, id int) (*models.Store, error)
	List(ctx context.Context, filter *models.StoreFilter) ([]models.Store, error)
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListCategoryTags(ctx context.Context) ([]models.CategoryTag, error)
}

// TokenRepositoryInterface defines the interface for magic link token repository
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.MagicLinkToken) error
	Consume(ctx context.Context, token string, now time.Time) (string, error)
}
