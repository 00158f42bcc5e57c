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

// BookRepository represents the book repository
type BookRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *database.DB, logger *logrus.Logger) *BookRepository {
	return &BookRepository{
		db:     db,
		logger: logger,
	}
}

const bookColumns = `id, title, author, description, amazon_paper_url, amazon_kindle_url,
		amazon_audible_url, summary_video_url, summary_text_url, recommended_by_post_url,
		cover_image_url, tags, created_at`

// Create creates a new book
func (r *BookRepository) Create(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:                req.Title,
		Author:               req.Author,
		Description:          req.Description,
		AmazonPaperURL:       req.AmazonPaperURL,
		AmazonKindleURL:      req.AmazonKindleURL,
		AmazonAudibleURL:     req.AmazonAudibleURL,
		SummaryVideoURL:      req.SummaryVideoURL,
		SummaryTextURL:       req.SummaryTextURL,
		RecommendedByPostURL: req.RecommendedByPostURL,
		CoverImageURL:        req.CoverImageURL,
		Tags:                 req.Tags,
		CreatedAt:            time.Now(),
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}

	query := `
		INSERT INTO books (title, author, description, amazon_paper_url, amazon_kindle_url,
			amazon_audible_url, summary_video_url, summary_text_url, recommended_by_post_url,
			cover_image_url, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Description, book.AmazonPaperURL, book.AmazonKindleURL,
		book.AmazonAudibleURL, book.SummaryVideoURL, book.SummaryTextURL, book.RecommendedByPostURL,
		book.CoverImageURL, pq.Array(book.Tags), book.CreatedAt,
	).Scan(&book.ID)

	if err != nil {
		r.logger.WithError(err).Error("書籍の作成に失敗")
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.logger.WithField("book_id", book.ID).Info("書籍を作成しました")
	return book, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Description, &book.AmazonPaperURL,
		&book.AmazonKindleURL, &book.AmazonAudibleURL, &book.SummaryVideoURL,
		&book.SummaryTextURL, &book.RecommendedByPostURL, &book.CoverImageURL,
		pq.Array(&book.Tags), &book.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		r.logger.WithError(err).WithField("book_id", id).Error("書籍の取得に失敗")
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// List retrieves books with filtering.
// 並び順は常に created_at DESC（同時刻は id DESC）。limit に上限は設けない。
func (r *BookRepository) List(ctx context.Context, filter *models.BookFilter) ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`

	var args []interface{}
	argIndex := 1

	// フィルター条件を追加
	if filter.Category != "" {
		query += fmt.Sprintf(" AND $%d = ANY(tags)", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	query += " ORDER BY created_at DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("書籍リストの取得に失敗")
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var book models.Book
		err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Description, &book.AmazonPaperURL,
			&book.AmazonKindleURL, &book.AmazonAudibleURL, &book.SummaryVideoURL,
			&book.SummaryTextURL, &book.RecommendedByPostURL, &book.CoverImageURL,
			pq.Array(&book.Tags), &book.CreatedAt,
		)
		if err != nil {
			r.logger.WithError(err).Error("書籍のスキャンに失敗")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}
