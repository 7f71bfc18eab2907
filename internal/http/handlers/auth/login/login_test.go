package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessions реализует интерфейс login.Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) NewCookie(sid string) *http.Cookie {
	m.Called(sid)
	return &http.Cookie{Name: "session_id", Value: sid, Path: "/"}
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(*MockService, *MockSessions)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "успешный вход",
			requestBody: map[string]string{"username": "student", "password": "Password1"},
			setupMocks: func(s *MockService, sess *MockSessions) {
				s.On("Login", mock.Anything, "student", "Password1").
					Return(&models.User{ID: 7, Username: "student"}, nil)
				sess.On("Create", mock.Anything, 7).Return("sid-777", nil)
				sess.On("NewCookie", "sid-777").Return()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"student"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMocks:     func(_ *MockService, _ *MockSessions) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name:           "пустой пароль",
			requestBody:    map[string]string{"username": "student"},
			setupMocks:     func(_ *MockService, _ *MockSessions) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"Password"`,
		},
		{
			name:        "неизвестный пользователь",
			requestBody: map[string]string{"username": "ghost", "password": "Password1"},
			setupMocks: func(s *MockService, _ *MockSessions) {
				s.On("Login", mock.Anything, "ghost", "Password1").
					Return(nil, errs.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"invalid username or password"`,
		},
		{
			name:        "неверный пароль",
			requestBody: map[string]string{"username": "student", "password": "WrongPass1"},
			setupMocks: func(s *MockService, _ *MockSessions) {
				s.On("Login", mock.Anything, "student", "WrongPass1").
					Return(nil, errs.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"invalid username or password"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: map[string]string{"username": "student", "password": "Password1"},
			setupMocks: func(s *MockService, _ *MockSessions) {
				s.On("Login", mock.Anything, "student", "Password1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not log in"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockSessions := new(MockSessions)
			tt.setupMocks(mockService, mockSessions)

			handler := New(logger, mockService, mockSessions)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			if tt.expectCookie {
				cookies := w.Result().Cookies()
				assert.NotEmpty(t, cookies)
				assert.Equal(t, "sid-777", cookies[0].Value)
			}

			mockService.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}
