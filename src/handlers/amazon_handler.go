package handlers

import (
	"errors"
	"net/http"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AmazonHandler represents the ASIN resolution handler
type AmazonHandler struct {
	service service.AmazonServiceInterface
	logger  *logrus.Logger
}

// NewAmazonHandler creates a new amazon handler
func NewAmazonHandler(service service.AmazonServiceInterface, logger *logrus.Logger) *AmazonHandler {
	return &AmazonHandler{
		service: service,
		logger:  logger,
	}
}

// ResolveASIN resolves an ASIN from an Amazon product URL
// @Summary Resolve an Amazon ASIN
// @Description Resolve the 10-character product identifier from a product URL, following short-link redirects when necessary
// @Tags amazon
// @Produce json
// @Param url query string true "Amazon product URL"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/resolve-amazon-asin [get]
func (h *AmazonHandler) ResolveASIN(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	asin, err := h.service.ResolveASIN(c.Request.Context(), rawURL)
	if err != nil {
		if errors.Is(err, service.ErrASINNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ASIN not found"})
			return
		}
		h.logger.WithError(err).WithField("url", rawURL).Error("ASINの解決に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve ASIN"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"asin": asin})
}
