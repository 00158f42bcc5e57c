package service

import (
	"context"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/validator"

	"github.com/sirupsen/logrus"
)

// bookService 書籍サービスの実装
type bookService struct {
	repo      repository.BookRepositoryInterface
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewBookService 書籍サービスを作成
func NewBookService(repo repository.BookRepositoryInterface, v *validator.CustomValidator, logger *logrus.Logger) BookServiceInterface {
	return &bookService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

// CreateBook 書籍を作成する。タグは正規化（トリム・重複排除）してから保存する。
func (s *bookService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	req.Tags = s.validator.SanitizeTags(req.Tags)
	return s.repo.Create(ctx, req)
}

// GetBook IDで書籍を取得する
func (s *bookService) GetBook(ctx context.Context, id int) (*models.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListBooks フィルター付きで書籍リストを取得する
func (s *bookService) ListBooks(ctx context.Context, filter *models.BookFilter) ([]models.Book, error) {
	return s.repo.List(ctx, filter)
}
