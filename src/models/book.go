package models

import (
	"time"
)

// Book represents a curated book
type Book struct {
	ID                   int       `json:"id" db:"id"`
	Title                string    `json:"title" db:"title"`
	Author               string    `json:"author" db:"author"`
	Description          *string   `json:"description,omitempty" db:"description"`
	AmazonPaperURL       *string   `json:"amazon_paper_url,omitempty" db:"amazon_paper_url"`
	AmazonKindleURL      *string   `json:"amazon_kindle_url,omitempty" db:"amazon_kindle_url"`
	AmazonAudibleURL     *string   `json:"amazon_audible_url,omitempty" db:"amazon_audible_url"`
	SummaryVideoURL      *string   `json:"summary_video_url,omitempty" db:"summary_video_url"`
	SummaryTextURL       *string   `json:"summary_text_url,omitempty" db:"summary_text_url"`
	RecommendedByPostURL *string   `json:"recommended_by_post_url,omitempty" db:"recommended_by_post_url"`
	CoverImageURL        *string   `json:"cover_image_url,omitempty" db:"cover_image_url"`
	Tags                 []string  `json:"tags" db:"tags"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

// TagList returns the book's tags for browse filtering
func (b Book) TagList() []string {
	return b.Tags
}

// CreateBookRequest represents the request payload for creating a book.
// cover_image_url はクライアントがASINから導出した値をそのまま受け取る（サーバー側では導出しない）。
type CreateBookRequest struct {
	Title                string   `json:"title" binding:"required,max=200"`
	Author               string   `json:"author" binding:"required,max=100"`
	Description          *string  `json:"description,omitempty"`
	AmazonPaperURL       *string  `json:"amazon_paper_url,omitempty" binding:"omitempty,url"`
	AmazonKindleURL      *string  `json:"amazon_kindle_url,omitempty" binding:"omitempty,url"`
	AmazonAudibleURL     *string  `json:"amazon_audible_url,omitempty" binding:"omitempty,url"`
	SummaryVideoURL      *string  `json:"summary_video_url,omitempty" binding:"omitempty,url"`
	SummaryTextURL       *string  `json:"summary_text_url,omitempty" binding:"omitempty,url"`
	RecommendedByPostURL *string  `json:"recommended_by_post_url,omitempty" binding:"omitempty,url"`
	CoverImageURL        *string  `json:"cover_image_url,omitempty" binding:"omitempty,url"`
	Tags                 []string `json:"tags,omitempty"`
}

// BookFilter represents filter options for book list queries
type BookFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=10" binding:"min=1"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

// BookListResponse represents the response for book list
type BookListResponse struct {
	Books []Book `json:"books"`
}
