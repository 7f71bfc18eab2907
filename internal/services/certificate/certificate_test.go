package certificate

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

// MockRepository реализует интерфейс certificate.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCertificate(ctx context.Context, id int) (*models.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certificate), args.Error(1)
}

func (m *MockRepository) GetCertificateByNumber(ctx context.Context, number string) (*models.Certificate, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certificate), args.Error(1)
}

func (m *MockRepository) ListCertificatesForUser(ctx context.Context, userID int) ([]*models.CertificateWithCourse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CertificateWithCourse), args.Error(1)
}

func (m *MockRepository) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sampleCert() *models.Certificate {
	return &models.Certificate{
		ID:                4,
		UserID:            5,
		CourseID:          3,
		CertificateNumber: "3-a1b2c3d4",
		IssueDate:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGet(t *testing.T) {
	t.Run("владелец читает свой сертификат", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificate", mock.Anything, 4).Return(sampleCert(), nil)
		repo.On("GetCourse", mock.Anything, 3).Return(&models.Course{ID: 3, Title: "Web Development Basics"}, nil)
		repo.On("GetUser", mock.Anything, 5).Return(&models.User{ID: 5, FirstName: "Ada"}, nil)

		svc := New(repo, testLogger())

		details, err := svc.Get(context.Background(), 4, 5)
		require.NoError(t, err)
		assert.Equal(t, "3-a1b2c3d4", details.CertificateNumber)
		assert.Equal(t, "Web Development Basics", details.Course.Title)
	})

	t.Run("анонимный доступ разрешён", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificate", mock.Anything, 4).Return(sampleCert(), nil)
		repo.On("GetCourse", mock.Anything, 3).Return(&models.Course{ID: 3}, nil)
		repo.On("GetUser", mock.Anything, 5).Return(&models.User{ID: 5}, nil)

		svc := New(repo, testLogger())

		_, err := svc.Get(context.Background(), 4, 0)
		require.NoError(t, err)
	})

	t.Run("чужой сертификат закрыт для вошедшего", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificate", mock.Anything, 4).Return(sampleCert(), nil)

		svc := New(repo, testLogger())

		_, err := svc.Get(context.Background(), 4, 6)
		require.ErrorIs(t, err, errs.ErrForbidden)
		repo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("несуществующий сертификат", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificate", mock.Anything, 99).Return(nil, errs.ErrNotFound)

		svc := New(repo, testLogger())

		_, err := svc.Get(context.Background(), 99, 0)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestVerify(t *testing.T) {
	t.Run("подлинный сертификат", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificateByNumber", mock.Anything, "3-a1b2c3d4").Return(sampleCert(), nil)
		repo.On("GetCourse", mock.Anything, 3).Return(&models.Course{ID: 3, Title: "Web Development Basics"}, nil)
		repo.On("GetUser", mock.Anything, 5).Return(&models.User{ID: 5, FirstName: "Ada"}, nil)

		svc := New(repo, testLogger())

		result, err := svc.Verify(context.Background(), "3-a1b2c3d4")
		require.NoError(t, err)
		assert.True(t, result.Verified)
		require.NotNil(t, result.Certificate)
		assert.Equal(t, "3-a1b2c3d4", result.Certificate.CertificateNumber)
	})

	t.Run("неизвестный номер не ошибка", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificateByNumber", mock.Anything, "0-deadbeef").Return(nil, errs.ErrNotFound)

		svc := New(repo, testLogger())

		result, err := svc.Verify(context.Background(), "0-deadbeef")
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, "certificate not found", result.Message)
		assert.Nil(t, result.Certificate)
	})

	t.Run("осиротевший сертификат не подтверждается", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCertificateByNumber", mock.Anything, "3-a1b2c3d4").Return(sampleCert(), nil)
		repo.On("GetCourse", mock.Anything, 3).Return(nil, errs.ErrNotFound)

		svc := New(repo, testLogger())

		result, err := svc.Verify(context.Background(), "3-a1b2c3d4")
		require.NoError(t, err)
		assert.False(t, result.Verified)
	})
}

func TestListForUser(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListCertificatesForUser", mock.Anything, 5).Return([]*models.CertificateWithCourse{
		{Certificate: *sampleCert(), Course: &models.Course{ID: 3}},
	}, nil)

	svc := New(repo, testLogger())

	result, err := svc.ListForUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
