package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/browse"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookHandler represents the book handler
type BookHandler struct {
	service service.BookServiceInterface
	logger  *logrus.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(service service.BookServiceInterface, logger *logrus.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		logger:  logger,
	}
}

// ListBooks retrieves books with filtering
// @Summary List books
// @Description Get a list of books with optional tag and search filtering
// @Tags books
// @Produce json
// @Param category query string false "Tag filter"
// @Param search query string false "Search in title and author"
// @Param limit query int false "Items per page (default: 10)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} models.BookListResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var filter models.BookFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.WithError(err).Error("クエリパラメータのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), &filter)
	if err != nil {
		h.logger.WithError(err).Error("書籍リストの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, models.BookListResponse{Books: books})
}

// GetBook retrieves a book by ID
// @Summary Get a book by ID
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} models.Book
// @Failure 404 {object} map[string]string
// @Router /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		h.logger.WithError(err).WithField("book_id", id).Error("書籍の取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// CreateBook creates a new book
// @Summary Create a new book
// @Description Create a book. cover_image_url is stored verbatim; the server never derives it.
// @Tags books
// @Accept json
// @Produce json
// @Param book body models.CreateBookRequest true "Book data"
// @Success 201 {object} models.Book
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("書籍の作成に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	h.logger.WithField("book_id", book.ID).Info("書籍を作成しました")
	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// ListBookTags derives the tag vocabulary from the current book list
// @Summary List book tags
// @Description Deduplicated union of all tags across books, in order of first appearance
// @Tags books
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 500 {object} map[string]string
// @Router /api/books/tags [get]
func (h *BookHandler) ListBookTags(c *gin.Context) {
	// タグ語彙はフェッチ済みアイテムから導出する仕様のため、
	// 一覧と同じクエリで全件を取得してから集約する
	filter := models.BookFilter{Limit: 1000, Offset: 0}
	books, err := h.service.ListBooks(c.Request.Context(), &filter)
	if err != nil {
		h.logger.WithError(err).Error("タグ語彙の導出に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": browse.TagVocabulary(books)})
}
