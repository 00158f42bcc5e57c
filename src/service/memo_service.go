package service

import (
	"context"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/validator"

	"github.com/sirupsen/logrus"
)

// memoService メモサービスの実装。更新・削除は所有者チェックを行う。
type memoService struct {
	repo      repository.MemoRepositoryInterface
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewMemoService メモサービスを作成
func NewMemoService(repo repository.MemoRepositoryInterface, v *validator.CustomValidator, logger *logrus.Logger) MemoServiceInterface {
	return &memoService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

// CreateMemo メモを作成する。所有者は認証済みアイデンティティで決まり、
// リクエストボディの user_id は一切参照しない。
func (s *memoService) CreateMemo(ctx context.Context, identity *models.Identity, req *models.CreateMemoRequest) (*models.Memo, error) {
	req.Tags = s.validator.SanitizeTags(req.Tags)
	return s.repo.Create(ctx, identity.UserID, req)
}

// GetMemo IDでメモを取得する
func (s *memoService) GetMemo(ctx context.Context, id int) (*models.Memo, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMemos フィルター付きでメモリストと正確な総数を取得する
func (s *memoService) ListMemos(ctx context.Context, filter *models.MemoFilter) ([]models.Memo, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateMemo メモを更新する。所有者でなければ ErrForbidden。
func (s *memoService) UpdateMemo(ctx context.Context, identity *models.Identity, id int, req *models.UpdateMemoRequest) (*models.Memo, error) {
	if err := s.checkOwnership(ctx, identity, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// DeleteMemo メモを削除する。所有者でなければ ErrForbidden。
func (s *memoService) DeleteMemo(ctx context.Context, identity *models.Identity, id int) error {
	if err := s.checkOwnership(ctx, identity, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// checkOwnership メモの所有者と認証済みアイデンティティの一致を確認する
func (s *memoService) checkOwnership(ctx context.Context, identity *models.Identity, id int) error {
	memo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if memo.UserID != identity.UserID {
		s.logger.WithFields(logrus.Fields{
			"memo_id":  id,
			"owner_id": memo.UserID,
			"user_id":  identity.UserID,
		}).Warn("所有者ではないユーザーによるメモ変更を拒否")
		return ErrForbidden
	}

	return nil
}
