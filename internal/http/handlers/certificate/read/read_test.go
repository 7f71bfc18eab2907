package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taallam/learning-platform/internal/http/middlewarectx"
	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id, viewerID int) (*models.CertificateDetails, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CertificateDetails), args.Error(1)
}

func sampleDetails() *models.CertificateDetails {
	return &models.CertificateDetails{
		Certificate: models.Certificate{
			ID:                4,
			UserID:            5,
			CourseID:          3,
			CertificateNumber: "3-a1b2c3d4",
			IssueDate:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		Course: &models.Course{ID: 3, Title: "Web Development Basics"},
		User:   &models.User{ID: 5, FirstName: "Ada", LastName: "Lovelace"},
	}
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "владелец читает свой сертификат",
			urlID: "4",
			user:  &models.User{ID: 5},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, 4, 5).Return(sampleDetails(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"certificateNumber":"3-a1b2c3d4"`,
		},
		{
			name:  "анонимный доступ разрешён",
			urlID: "4",
			user:  nil,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, 4, 0).Return(sampleDetails(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"certificateNumber":"3-a1b2c3d4"`,
		},
		{
			name:  "чужой сертификат закрыт",
			urlID: "4",
			user:  &models.User{ID: 6},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, 4, 6).Return(nil, errs.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"message":"not authorized to view this certificate"`,
		},
		{
			name:  "сертификат не найден",
			urlID: "99",
			user:  nil,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, 99, 0).Return(nil, errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"certificate not found"`,
		},
		{
			name:           "некорректный id в url",
			urlID:          "abc",
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid certificate ID"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/certificates/"+tt.urlID, nil)

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.user)
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
