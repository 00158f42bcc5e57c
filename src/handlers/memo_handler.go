package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/middleware"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MemoHandler represents the memo handler
type MemoHandler struct {
	service service.MemoServiceInterface
	logger  *logrus.Logger
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(service service.MemoServiceInterface, logger *logrus.Logger) *MemoHandler {
	return &MemoHandler{
		service: service,
		logger:  logger,
	}
}

// ListMemos retrieves memos with filtering and an exact total count
// @Summary List memos
// @Tags memos
// @Produce json
// @Param book_id query int false "Book ID filter"
// @Param user_id query string false "User ID filter"
// @Param visibility query string false "Visibility filter (public, private)"
// @Param limit query int false "Items per page (default: 10)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} models.MemoListResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/memos [get]
func (h *MemoHandler) ListMemos(c *gin.Context) {
	var filter models.MemoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.WithError(err).Error("クエリパラメータのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	memos, count, err := h.service.ListMemos(c.Request.Context(), &filter)
	if err != nil {
		h.logger.WithError(err).Error("メモリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list memos"})
		return
	}

	c.JSON(http.StatusOK, models.MemoListResponse{Memos: memos, Count: count})
}

// GetMemo retrieves a memo by ID
// @Summary Get a memo by ID
// @Tags memos
// @Produce json
// @Param id path int true "Memo ID"
// @Success 200 {object} models.Memo
// @Failure 404 {object} map[string]string
// @Router /api/memos/{id} [get]
func (h *MemoHandler) GetMemo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memo ID"})
		return
	}

	memo, err := h.service.GetMemo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMemoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
			return
		}
		h.logger.WithError(err).WithField("memo_id", id).Error("メモの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get memo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"memo": memo})
}

// CreateMemo creates a new memo owned by the authenticated identity
// @Summary Create a new memo
// @Tags memos
// @Accept json
// @Produce json
// @Param memo body models.CreateMemoRequest true "Memo data"
// @Success 201 {object} models.Memo
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/memos [post]
func (h *MemoHandler) CreateMemo(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.logger.Error("アイデンティティがコンテキストに設定されていません")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	memo, err := h.service.CreateMemo(c.Request.Context(), identity, &req)
	if err != nil {
		h.logger.WithError(err).Error("メモの作成に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create memo"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"memo_id": memo.ID,
		"user_id": memo.UserID,
	}).Info("メモを作成しました")
	c.JSON(http.StatusCreated, gin.H{"memo": memo})
}

// UpdateMemo updates a memo's content and visibility
// @Summary Update a memo
// @Description Update content and is_public. Only the memo's owner may update it.
// @Tags memos
// @Accept json
// @Produce json
// @Param id path int true "Memo ID"
// @Param memo body models.UpdateMemoRequest true "Updated memo data"
// @Success 200 {object} models.Memo
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/memos/{id} [put]
func (h *MemoHandler) UpdateMemo(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.logger.Error("アイデンティティがコンテキストに設定されていません")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memo ID"})
		return
	}

	var req models.UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	memo, err := h.service.UpdateMemo(c.Request.Context(), identity, id, &req)
	if err != nil {
		h.logger.WithError(err).WithField("memo_id", id).Error("メモの更新に失敗")
		switch {
		case errors.Is(err, repository.ErrMemoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the memo's owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update memo"})
		}
		return
	}

	h.logger.WithField("memo_id", id).Info("メモを更新しました")
	c.JSON(http.StatusOK, gin.H{"memo": memo})
}

// DeleteMemo deletes a memo
// @Summary Delete a memo
// @Description Only the memo's owner may delete it.
// @Tags memos
// @Param id path int true "Memo ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/memos/{id} [delete]
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.logger.Error("アイデンティティがコンテキストに設定されていません")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memo ID"})
		return
	}

	if err := h.service.DeleteMemo(c.Request.Context(), identity, id); err != nil {
		h.logger.WithError(err).WithField("memo_id", id).Error("メモの削除に失敗")
		switch {
		case errors.Is(err, repository.ErrMemoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the memo's owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete memo"})
		}
		return
	}

	h.logger.WithField("memo_id", id).Info("メモを削除しました")
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
