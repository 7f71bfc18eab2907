// Package certificate содержит бизнес-логику реестра сертификатов:
// выборки владельца, просмотр по ID и публичную проверку по номеру.
package certificate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

// Repository определяет методы хранилища, нужные реестру сертификатов.
type Repository interface {
	// GetCertificate возвращает сертификат по ID, errs.ErrNotFound если не найден.
	GetCertificate(ctx context.Context, id int) (*models.Certificate, error)
	// GetCertificateByNumber возвращает сертификат по публичному номеру.
	GetCertificateByNumber(ctx context.Context, number string) (*models.Certificate, error)
	// ListCertificatesForUser возвращает сертификаты пользователя вместе с курсами.
	ListCertificatesForUser(ctx context.Context, userID int) ([]*models.CertificateWithCourse, error)
	// GetCourse возвращает курс по ID.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// VerifyResult — результат публичной проверки сертификата.
// Неизвестный номер не является ошибкой: Verified=false.
type VerifyResult struct {
	Verified    bool                       `json:"verified"`
	Message     string                     `json:"message,omitempty"`
	Certificate *models.CertificateDetails `json:"certificate,omitempty"`
}

// Service реализует реестр сертификатов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ListForUser возвращает сертификаты пользователя вместе с курсами.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.CertificateWithCourse, error) {
	const op = "certificate.ListForUser"

	result, err := s.repo.ListCertificatesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Get возвращает сертификат с курсом и владельцем.
//
// viewerID — id аутентифицированного пользователя или 0 для анонимного.
// Аутентифицированный не-владелец получает errs.ErrForbidden; анонимный
// доступ разрешён: публичная страница сертификата.
func (s *Service) Get(ctx context.Context, id, viewerID int) (*models.CertificateDetails, error) {
	const op = "certificate.Get"

	cert, err := s.repo.GetCertificate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if viewerID != 0 && viewerID != cert.UserID {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrForbidden)
	}

	details, err := s.details(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return details, nil
}

// Verify выполняет публичную проверку сертификата по номеру.
// Никогда не возвращает ошибку для неизвестного номера.
func (s *Service) Verify(ctx context.Context, number string) (*VerifyResult, error) {
	const op = "certificate.Verify"

	cert, err := s.repo.GetCertificateByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return &VerifyResult{
				Verified: false,
				Message:  "certificate not found",
			}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	details, err := s.details(ctx, cert)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return &VerifyResult{
				Verified: false,
				Message:  "course or user details not found",
			}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &VerifyResult{
		Verified:    true,
		Certificate: details,
	}, nil
}

func (s *Service) details(ctx context.Context, cert *models.Certificate) (*models.CertificateDetails, error) {
	course, err := s.repo.GetCourse(ctx, cert.CourseID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUser(ctx, cert.UserID)
	if err != nil {
		return nil, err
	}
	return &models.CertificateDetails{
		Certificate: *cert,
		Course:      course,
		User:        user,
	}, nil
}
