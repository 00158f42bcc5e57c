package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService 認証サービスのモック
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) IssueMagicLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyMagicLink(ctx context.Context, token string) (*models.AuthResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) AdminLogin(email, password string) (*models.AuthResponse, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func setupAuthRouter(mockService *MockAuthService, sessions *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authHandler := NewAuthHandler(mockService, sessions, logrus.New())

	auth := r.Group("/api/auth")
	{
		auth.POST("/magic-link", authHandler.IssueMagicLink)
		auth.GET("/verify", authHandler.VerifyMagicLink)
		auth.POST("/logout", authHandler.Logout)
	}
	r.POST("/api/admin/login", authHandler.AdminLogin)

	return r
}

func sampleAuthResponse(provider string) *models.AuthResponse {
	return &models.AuthResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(time.Hour),
		Identity: models.Identity{
			UserID:   "reader@example.com",
			Email:    "reader@example.com",
			Provider: provider,
		},
	}
}

func TestAuthHandler_IssueMagicLink(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:        "successful issue",
			requestBody: map[string]string{"email": "reader@example.com"},
			mockSetup: func(m *MockAuthService) {
				m.On("IssueMagicLink", mock.Anything, "reader@example.com").Return("http://localhost:3000/auth/verify?token=abc", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email",
			requestBody:    map[string]string{"email": "not-an-email"},
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			requestBody:    map[string]string{},
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)
			router := setupAuthRouter(mockService, session.NewStore())

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req, _ := http.NewRequest("POST", "/api/auth/magic-link", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			// リンクはメールで届く想定なのでレスポンスには含めない
			if tt.expectedStatus == http.StatusOK {
				assert.NotContains(t, w.Body.String(), "token=abc")
			}
		})
	}
}

func TestAuthHandler_VerifyMagicLink(t *testing.T) {
	mockService := new(MockAuthService)
	sessions := session.NewStore()
	router := setupAuthRouter(mockService, sessions)

	mockService.On("VerifyMagicLink", mock.Anything, "valid-token").Return(sampleAuthResponse("magic_link"), nil)

	req, _ := http.NewRequest("GET", "/api/auth/verify?token=valid-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp["token"])
	assert.NotEmpty(t, resp["session_id"])
	assert.Equal(t, "/", resp["redirect_to"])
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthHandler_VerifyMagicLink_ReturnPath(t *testing.T) {
	mockService := new(MockAuthService)
	sessions := session.NewStore()
	router := setupAuthRouter(mockService, sessions)

	mockService.On("IssueMagicLink", mock.Anything, "reader@example.com").Return("link", nil)
	mockService.On("VerifyMagicLink", mock.Anything, "valid-token").Return(sampleAuthResponse("magic_link"), nil)

	// 戻り先パスを添えてリンクを発行しておく
	body, _ := json.Marshal(map[string]string{"email": "reader@example.com", "return_path": "/memos/42"})
	req, _ := http.NewRequest("POST", "/api/auth/magic-link", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/auth/verify?token=valid-token", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/memos/42", resp["redirect_to"])

	// 残るのは確立されたセッションだけ。メールアドレスをキーにした
	// エントリは消費とともに消える。
	assert.Equal(t, 1, sessions.Len())
	_, ok := sessions.ReturnPath("reader@example.com")
	assert.False(t, ok)
}

func TestAuthHandler_VerifyMagicLink_Errors(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:  "expired or consumed token",
			query: "?token=stale-token",
			mockSetup: func(m *MockAuthService) {
				m.On("VerifyMagicLink", mock.Anything, "stale-token").Return(nil, repository.ErrTokenNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing token parameter",
			query:          "",
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)
			router := setupAuthRouter(mockService, session.NewStore())

			req, _ := http.NewRequest("GET", "/api/auth/verify"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mockService := new(MockAuthService)
	sessions := session.NewStore()
	router := setupAuthRouter(mockService, sessions)

	sessions.Init("session-1", &models.Identity{UserID: "reader@example.com"})

	body, _ := json.Marshal(map[string]string{"session_id": "session-1"})
	req, _ := http.NewRequest("POST", "/api/auth/logout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:        "successful login",
			requestBody: models.AdminLoginRequest{Email: "admin@example.com", Password: "correct-password"},
			mockSetup: func(m *MockAuthService) {
				m.On("AdminLogin", "admin@example.com", "correct-password").Return(sampleAuthResponse("admin"), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "wrong password",
			requestBody: models.AdminLoginRequest{Email: "admin@example.com", Password: "wrong"},
			mockSetup: func(m *MockAuthService) {
				m.On("AdminLogin", "admin@example.com", "wrong").Return(nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "admin not configured",
			requestBody: models.AdminLoginRequest{Email: "admin@example.com", Password: "x"},
			mockSetup: func(m *MockAuthService) {
				m.On("AdminLogin", "admin@example.com", "x").Return(nil, service.ErrAdminNotConfigured)
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "missing password",
			requestBody:    map[string]string{"email": "admin@example.com"},
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)
			router := setupAuthRouter(mockService, session.NewStore())

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req, _ := http.NewRequest("POST", "/api/admin/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp models.AuthResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "admin", resp.Identity.Provider)
			}
		})
	}
}
