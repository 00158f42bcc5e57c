package service

import (
	"context"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"

	"github.com/sirupsen/logrus"
)

// storeService 店舗サービスの実装
type storeService struct {
	repo   repository.StoreRepositoryInterface
	logger *logrus.Logger
}

// NewStoreService 店舗サービスを作成
func NewStoreService(repo repository.StoreRepositoryInterface, logger *logrus.Logger) StoreServiceInterface {
	return &storeService{
		repo:   repo,
		logger: logger,
	}
}

// CreateStore 店舗をカテゴリタグの関連付けとともに作成する（トランザクション内）
func (s *storeService) CreateStore(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, error) {
	return s.repo.Create(ctx, req)
}

// GetStore IDで店舗を取得する
func (s *storeService) GetStore(ctx context.Context, id int) (*models.Store, error) {
	return s.repo.GetByID(ctx, id)
}

// ListStores フィルター付きで店舗リストを取得する
func (s *storeService) ListStores(ctx context.Context, filter *models.StoreFilter) ([]models.Store, error) {
	return s.repo.List(ctx, filter)
}

// ListAreas アクティブなエリアを取得する
func (s *storeService) ListAreas(ctx context.Context) ([]models.Area, error) {
	return s.repo.ListAreas(ctx)
}

// ListCategoryTags アクティブなカテゴリタグを取得する
func (s *storeService) ListCategoryTags(ctx context.Context) ([]models.CategoryTag, error) {
	return s.repo.ListCategoryTags(ctx)
}
