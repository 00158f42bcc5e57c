package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/database"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// MemoRepository represents the memo repository
type MemoRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(db *database.DB, logger *logrus.Logger) *MemoRepository {
	return &MemoRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new memo. user_id は認証済みアイデンティティから渡される。
func (r *MemoRepository) Create(ctx context.Context, userID string, req *models.CreateMemoRequest) (*models.Memo, error) {
	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	now := time.Now()
	memo := &models.Memo{
		BookID:     req.BookID,
		UserID:     userID,
		Content:    req.Content,
		PageNumber: req.PageNumber,
		Chapter:    req.Chapter,
		Tags:       req.Tags,
		IsPublic:   isPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if memo.Tags == nil {
		memo.Tags = []string{}
	}

	query := `
		INSERT INTO memos (book_id, user_id, content, page_number, chapter, tags, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		memo.BookID, memo.UserID, memo.Content, memo.PageNumber, memo.Chapter,
		pq.Array(memo.Tags), memo.IsPublic, memo.CreatedAt, memo.UpdatedAt,
	).Scan(&memo.ID)

	if err != nil {
		r.logger.WithError(err).Error("メモの作成に失敗")
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}

	r.logger.WithField("memo_id", memo.ID).Info("メモを作成しました")
	return memo, nil
}

// GetByID retrieves a memo by ID joined with its parent book
func (r *MemoRepository) GetByID(ctx context.Context, id int) (*models.Memo, error) {
	query := `
		SELECT m.id, m.book_id, m.user_id, m.content, m.page_number, m.chapter,
			m.tags, m.is_public, m.created_at, m.updated_at, b.title, b.author
		FROM memos m
		JOIN books b ON b.id = m.book_id
		WHERE m.id = $1`

	memo := &models.Memo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&memo.ID, &memo.BookID, &memo.UserID, &memo.Content, &memo.PageNumber, &memo.Chapter,
		pq.Array(&memo.Tags), &memo.IsPublic, &memo.CreatedAt, &memo.UpdatedAt,
		&memo.BookTitle, &memo.BookAuthor,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemoNotFound
		}
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの取得に失敗")
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}

	return memo, nil
}

// List retrieves memos with filtering and returns the exact total count
func (r *MemoRepository) List(ctx context.Context, filter *models.MemoFilter) ([]models.Memo, int, error) {
	baseQuery := `FROM memos WHERE 1=1`

	var args []interface{}
	argIndex := 1

	// フィルター条件を追加
	if filter.BookID != 0 {
		baseQuery += fmt.Sprintf(" AND book_id = $%d", argIndex)
		args = append(args, filter.BookID)
		argIndex++
	}

	if filter.UserID != "" {
		baseQuery += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}

	// visibility 指定なしは公開・非公開の両方を返す
	switch filter.Visibility {
	case "public":
		baseQuery += " AND is_public = TRUE"
	case "private":
		baseQuery += " AND is_public = FALSE"
	}

	// 総数を取得
	countQuery := `SELECT COUNT(*) ` + baseQuery
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.WithError(err).Error("メモ総数の取得に失敗")
		return nil, 0, fmt.Errorf("failed to count memos: %w", err)
	}

	selectQuery := `
		SELECT id, book_id, user_id, content, page_number, chapter, tags, is_public, created_at, updated_at
		` + baseQuery
	selectQuery += " ORDER BY created_at DESC, id DESC"
	selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		r.logger.WithError(err).Error("メモリストの取得に失敗")
		return nil, 0, fmt.Errorf("failed to list memos: %w", err)
	}
	defer rows.Close()

	memos := []models.Memo{}
	for rows.Next() {
		var memo models.Memo
		err := rows.Scan(
			&memo.ID, &memo.BookID, &memo.UserID, &memo.Content, &memo.PageNumber,
			&memo.Chapter, pq.Array(&memo.Tags), &memo.IsPublic, &memo.CreatedAt, &memo.UpdatedAt,
		)
		if err != nil {
			r.logger.WithError(err).Error("メモのスキャンに失敗")
			return nil, 0, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return memos, total, nil
}

// Update updates a memo's content and visibility
func (r *MemoRepository) Update(ctx context.Context, id int, req *models.UpdateMemoRequest) (*models.Memo, error) {
	query := `UPDATE memos SET content = $1, updated_at = $2`
	args := []interface{}{req.Content, time.Now()}
	argIndex := 3

	if req.IsPublic != nil {
		query += fmt.Sprintf(", is_public = $%d", argIndex)
		args = append(args, *req.IsPublic)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの更新に失敗")
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrMemoNotFound
	}

	r.logger.WithField("memo_id", id).Info("メモを更新しました")

	// 親の書籍情報を結合した行を返す
	return r.GetByID(ctx, id)
}

// Delete deletes a memo
func (r *MemoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM memos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの削除に失敗")
		return fmt.Errorf("failed to delete memo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMemoNotFound
	}

	r.logger.WithField("memo_id", id).Info("メモを削除しました")
	return nil
}
