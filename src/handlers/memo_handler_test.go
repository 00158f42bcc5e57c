package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/middleware"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMemoService メモサービスのモック
type MockMemoService struct {
	mock.Mock
}

func (m *MockMemoService) CreateMemo(ctx context.Context, identity *models.Identity, req *models.CreateMemoRequest) (*models.Memo, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Memo), args.Error(1)
}

func (m *MockMemoService) GetMemo(ctx context.Context, id int) (*models.Memo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Memo), args.Error(1)
}

func (m *MockMemoService) ListMemos(ctx context.Context, filter *models.MemoFilter) ([]models.Memo, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Memo), args.Int(1), args.Error(2)
}

func (m *MockMemoService) UpdateMemo(ctx context.Context, identity *models.Identity, id int, req *models.UpdateMemoRequest) (*models.Memo, error) {
	args := m.Called(ctx, identity, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Memo), args.Error(1)
}

func (m *MockMemoService) DeleteMemo(ctx context.Context, identity *models.Identity, id int) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

// identityMiddleware テスト用にアイデンティティを直接設定する
func identityMiddleware(identity *models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.IdentityKey, identity)
		}
		c.Next()
	}
}

func setupMemoRouter(mockService *MockMemoService, identity *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	memoHandler := NewMemoHandler(mockService, logrus.New())

	api := r.Group("/api/memos")
	api.Use(identityMiddleware(identity))
	{
		api.GET("", memoHandler.ListMemos)
		api.GET("/:id", memoHandler.GetMemo)
		api.POST("", memoHandler.CreateMemo)
		api.PUT("/:id", memoHandler.UpdateMemo)
		api.DELETE("/:id", memoHandler.DeleteMemo)
	}

	return r
}

func testIdentity() *models.Identity {
	return &models.Identity{UserID: "reader@example.com", Provider: "magic_link"}
}

func TestMemoHandler_ListMemos(t *testing.T) {
	mockService := new(MockMemoService)
	router := setupMemoRouter(mockService, nil)

	mockService.On("ListMemos", mock.Anything, mock.MatchedBy(func(f *models.MemoFilter) bool {
		return f.BookID == 3 && f.Visibility == "public" && f.Limit == 10 && f.Offset == 0
	})).Return([]models.Memo{
		{ID: 1, BookID: 3, UserID: "reader@example.com", Content: "memo", IsPublic: true},
	}, 1, nil)

	req, _ := http.NewRequest("GET", "/api/memos?book_id=3&visibility=public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.MemoListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Memos, 1)
}

func TestMemoHandler_ListMemos_InvalidVisibility(t *testing.T) {
	mockService := new(MockMemoService)
	router := setupMemoRouter(mockService, nil)

	req, _ := http.NewRequest("GET", "/api/memos?visibility=secret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemoHandler_CreateMemo(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		requestBody    interface{}
		mockSetup      func(*MockMemoService)
		expectedStatus int
	}{
		{
			name:     "successful creation",
			identity: testIdentity(),
			requestBody: models.CreateMemoRequest{
				BookID:  1,
				Content: "great book",
			},
			mockSetup: func(m *MockMemoService) {
				m.On("CreateMemo", mock.Anything, mock.Anything, mock.AnythingOfType("*models.CreateMemoRequest")).Return(&models.Memo{
					ID:      1,
					BookID:  1,
					UserID:  "reader@example.com",
					Content: "great book",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unauthenticated",
			identity:       nil,
			requestBody:    models.CreateMemoRequest{BookID: 1, Content: "x"},
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing content",
			identity:       testIdentity(),
			requestBody:    map[string]interface{}{"book_id": 1},
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing book_id",
			identity:       testIdentity(),
			requestBody:    map[string]interface{}{"content": "x"},
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMemoService)
			tt.mockSetup(mockService)
			router := setupMemoRouter(mockService, tt.identity)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req, _ := http.NewRequest("POST", "/api/memos", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMemoHandler_UpdateMemo(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		requestBody    interface{}
		mockSetup      func(*MockMemoService)
		expectedStatus int
	}{
		{
			name:        "successful update",
			identity:    testIdentity(),
			requestBody: models.UpdateMemoRequest{Content: "updated"},
			mockSetup: func(m *MockMemoService) {
				m.On("UpdateMemo", mock.Anything, mock.Anything, 7, mock.AnythingOfType("*models.UpdateMemoRequest")).Return(&models.Memo{
					ID:      7,
					Content: "updated",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated",
			identity:       nil,
			requestBody:    models.UpdateMemoRequest{Content: "updated"},
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing content",
			identity:       testIdentity(),
			requestBody:    map[string]interface{}{"is_public": true},
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "not the owner",
			identity:    testIdentity(),
			requestBody: models.UpdateMemoRequest{Content: "updated"},
			mockSetup: func(m *MockMemoService) {
				m.On("UpdateMemo", mock.Anything, mock.Anything, 7, mock.Anything).Return(nil, service.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:        "memo not found",
			identity:    testIdentity(),
			requestBody: models.UpdateMemoRequest{Content: "updated"},
			mockSetup: func(m *MockMemoService) {
				m.On("UpdateMemo", mock.Anything, mock.Anything, 7, mock.Anything).Return(nil, repository.ErrMemoNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMemoService)
			tt.mockSetup(mockService)
			router := setupMemoRouter(mockService, tt.identity)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req, _ := http.NewRequest("PUT", "/api/memos/7", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMemoHandler_DeleteMemo(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		mockSetup      func(*MockMemoService)
		expectedStatus int
	}{
		{
			name:     "successful deletion",
			identity: testIdentity(),
			mockSetup: func(m *MockMemoService) {
				m.On("DeleteMemo", mock.Anything, mock.Anything, 7).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "nonexistent memo returns 404",
			identity: testIdentity(),
			mockSetup: func(m *MockMemoService) {
				m.On("DeleteMemo", mock.Anything, mock.Anything, 7).Return(repository.ErrMemoNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "not the owner",
			identity: testIdentity(),
			mockSetup: func(m *MockMemoService) {
				m.On("DeleteMemo", mock.Anything, mock.Anything, 7).Return(service.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unauthenticated",
			identity:       nil,
			mockSetup:      func(m *MockMemoService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMemoService)
			tt.mockSetup(mockService)
			router := setupMemoRouter(mockService, tt.identity)

			req, _ := http.NewRequest("DELETE", "/api/memos/7", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, true, resp["success"])
			}
		})
	}
}
