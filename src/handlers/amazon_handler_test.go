package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAmazonService ASIN解決サービスのモック
type MockAmazonService struct {
	mock.Mock
}

func (m *MockAmazonService) ResolveASIN(ctx context.Context, rawURL string) (string, error) {
	args := m.Called(ctx, rawURL)
	return args.String(0), args.Error(1)
}

func (m *MockAmazonService) CoverImageURL(asin string) string {
	args := m.Called(asin)
	return args.String(0)
}

func setupAmazonRouter(mockService *MockAmazonService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	amazonHandler := NewAmazonHandler(mockService, logrus.New())
	r.GET("/api/resolve-amazon-asin", amazonHandler.ResolveASIN)

	return r
}

func TestAmazonHandler_ResolveASIN(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockSetup      func(*MockAmazonService)
		expectedStatus int
		expectedASIN   string
	}{
		{
			name: "direct product URL",
			url:  "https://www.amazon.co.jp/dp/4101010137",
			mockSetup: func(m *MockAmazonService) {
				m.On("ResolveASIN", mock.Anything, "https://www.amazon.co.jp/dp/4101010137").Return("4101010137", nil)
			},
			expectedStatus: http.StatusOK,
			expectedASIN:   "4101010137",
		},
		{
			name: "unresolvable URL returns 404",
			url:  "https://www.amazon.co.jp/gp/cart/view.html",
			mockSetup: func(m *MockAmazonService) {
				m.On("ResolveASIN", mock.Anything, mock.Anything).Return("", service.ErrASINNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing url parameter",
			url:            "",
			mockSetup:      func(m *MockAmazonService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAmazonService)
			tt.mockSetup(mockService)
			router := setupAmazonRouter(mockService)

			target := "/api/resolve-amazon-asin"
			if tt.url != "" {
				target += "?url=" + url.QueryEscape(tt.url)
			}

			req, _ := http.NewRequest("GET", target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedASIN != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedASIN, resp["asin"])
			}
		})
	}
}
