package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StoreHandler represents the bookstore handler
type StoreHandler struct {
	service service.StoreServiceInterface
	logger  *logrus.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service service.StoreServiceInterface, logger *logrus.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger,
	}
}

// ListStores retrieves active stores with filtering
// @Summary List bookstores
// @Tags bookstores
// @Produce json
// @Param search query string false "Search in name and description"
// @Param category query string false "Category tag filter"
// @Param limit query int false "Items per page (default: 10)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} models.StoreListResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/bookstores [get]
func (h *StoreHandler) ListStores(c *gin.Context) {
	var filter models.StoreFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.WithError(err).Error("クエリパラメータのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	stores, err := h.service.ListStores(c.Request.Context(), &filter)
	if err != nil {
		h.logger.WithError(err).Error("店舗リストの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}

	c.JSON(http.StatusOK, models.StoreListResponse{Stores: stores})
}

// GetStore retrieves a store by ID
// @Summary Get a bookstore by ID
// @Tags bookstores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Store
// @Failure 404 {object} map[string]string
// @Router /api/bookstores/{id} [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store ID"})
		return
	}

	store, err := h.service.GetStore(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		h.logger.WithError(err).WithField("store_id", id).Error("店舗の取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// CreateStore creates a new store with its category tag joins
// @Summary Create a new bookstore
// @Description Create a store and its category tag joins atomically
// @Tags bookstores
// @Accept json
// @Produce json
// @Param store body models.CreateStoreRequest true "Store data"
// @Success 201 {object} models.Store
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/bookstores [post]
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	store, err := h.service.CreateStore(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("店舗の作成に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	h.logger.WithField("store_id", store.ID).Info("店舗を作成しました")
	c.JSON(http.StatusCreated, gin.H{"store": store})
}

// ListAreas retrieves active areas ordered by sort key then name
// @Summary List areas
// @Tags bookstores
// @Produce json
// @Success 200 {object} models.AreaListResponse
// @Failure 500 {object} map[string]string
// @Router /api/areas [get]
func (h *StoreHandler) ListAreas(c *gin.Context) {
	areas, err := h.service.ListAreas(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("エリアリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list areas"})
		return
	}

	c.JSON(http.StatusOK, models.AreaListResponse{Areas: areas})
}

// ListCategoryTags retrieves active category tags
// @Summary List category tags
// @Tags bookstores
// @Produce json
// @Success 200 {object} models.CategoryTagListResponse
// @Failure 500 {object} map[string]string
// @Router /api/category-tags [get]
func (h *StoreHandler) ListCategoryTags(c *gin.Context) {
	tags, err := h.service.ListCategoryTags(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("カテゴリタグリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list category tags"})
		return
	}

	c.JSON(http.StatusOK, models.CategoryTagListResponse{CategoryTags: tags})
}
