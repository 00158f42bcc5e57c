package models

import (
	"time"
)

// Memo represents a reading memo attached to a book
type Memo struct {
	ID         int       `json:"id" db:"id"`
	BookID     int       `json:"book_id" db:"book_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	PageNumber *int      `json:"page_number,omitempty" db:"page_number"`
	Chapter    *string   `json:"chapter,omitempty" db:"chapter"`
	Tags       []string  `json:"tags" db:"tags"`
	IsPublic   bool      `json:"is_public" db:"is_public"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// 結合した親の書籍情報（単一取得・更新時のみ設定される）
	BookTitle  *string `json:"book_title,omitempty" db:"book_title"`
	BookAuthor *string `json:"book_author,omitempty" db:"book_author"`
}

// TagList returns the memo's tags for browse filtering
func (m Memo) TagList() []string {
	return m.Tags
}

// CreateMemoRequest represents the request payload for creating a memo.
// user_id はリクエストボディからではなく認証済みアイデンティティから解決される。
type CreateMemoRequest struct {
	BookID     int      `json:"book_id" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	PageNumber *int     `json:"page_number,omitempty"`
	Chapter    *string  `json:"chapter,omitempty" binding:"omitempty,max=100"`
	Tags       []string `json:"tags,omitempty"`
	IsPublic   *bool    `json:"is_public,omitempty"`
}

// UpdateMemoRequest represents the request payload for updating a memo
type UpdateMemoRequest struct {
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

// MemoFilter represents filter options for memo queries
type MemoFilter struct {
	BookID     int    `form:"book_id"`
	UserID     string `form:"user_id"`
	Visibility string `form:"visibility" binding:"omitempty,oneof=public private"`
	Limit      int    `form:"limit,default=10" binding:"min=1"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// MemoListResponse represents the response for memo list
type MemoListResponse struct {
	Memos []Memo `json:"memos"`
	Count int    `json:"count"`
}
