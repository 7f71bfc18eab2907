// Package enrollment содержит бизнес-логику записи на курсы,
// обновления прогресса и выдачи сертификатов при завершении.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// Попыток выдать сертификат при коллизии случайного суффикса номера.
const issueAttempts = 3

// Repository определяет методы хранилища, нужные движку записей.
type Repository interface {
	// GetCourse возвращает курс по ID, errs.ErrNotFound если не найден.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetEnrollment возвращает запись пользователя на курс.
	GetEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
	// CreateEnrollment записывает пользователя на курс.
	CreateEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
	// ListEnrollmentsForUser возвращает записи пользователя вместе с курсами.
	ListEnrollmentsForUser(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error)
	// UpdateEnrollmentProgress выставляет прогресс и при достижении 100
	// атомарно выдаёт сертификат с номером newCertNumber(courseID).
	UpdateEnrollmentProgress(ctx context.Context, enrollmentID, userID, progress int, newCertNumber func(courseID int) string) (*models.Enrollment, *models.Certificate, error)
}

// Publisher публикует событие о выданном сертификате.
type Publisher interface {
	PublishCertificateIssued(event models.CertificateIssuedEvent) error
}

// Service реализует движок записей на курсы.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый Service.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Enroll записывает пользователя на курс.
//
// Несуществующий курс — errs.ErrNotFound, повторная запись — errs.ErrConflict.
// Проверка существующей записи выполняется до вставки, уникальное ограничение
// базы закрывает гонку двух одновременных Enroll.
func (s *Service) Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	const op = "enrollment.Enroll"

	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.GetEnrollment(ctx, userID, courseID); err == nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enrollment, err := s.repo.CreateEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user enrolled",
		slog.Int("user_id", userID),
		slog.Int("course_id", courseID),
		slog.Int("enrollment_id", enrollment.ID))
	return enrollment, nil
}

// ListForUser возвращает записи пользователя вместе с курсами.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error) {
	const op = "enrollment.ListForUser"

	result, err := s.repo.ListEnrollmentsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProgress выставляет прогресс записи пользователя.
//
// Прогресс вне диапазона 0..100 отклоняется обработчиком до вызова сервиса.
// Достижение 100 процентов выдаёт сертификат в той же транзакции хранилища;
// повторное завершение идемпотентно и второй сертификат не создаёт.
// Коллизия случайного суффикса номера повторяется с новым суффиксом.
func (s *Service) UpdateProgress(ctx context.Context, enrollmentID, userID, progress int) (*models.Enrollment, error) {
	const op = "enrollment.UpdateProgress"

	var enrollment *models.Enrollment
	var issued *models.Certificate
	var err error
	for attempt := 0; attempt < issueAttempts; attempt++ {
		enrollment, issued, err = s.repo.UpdateEnrollmentProgress(ctx, enrollmentID, userID, progress, newCertificateNumber)
		if err == nil {
			break
		}
		if errors.Is(err, errs.ErrConflict) && errs.Field(err) == "certificateNumber" {
			s.log.Warn("certificate number collision, retrying",
				slog.Int("enrollment_id", enrollmentID))
			continue
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if issued != nil {
		s.log.Info("certificate issued",
			slog.Int("enrollment_id", enrollment.ID),
			slog.String("certificate_number", issued.CertificateNumber))
		s.publishIssued(ctx, enrollment, issued)
	}
	return enrollment, nil
}

// publishIssued отправляет событие о выдаче сертификата в брокер.
// Ошибка публикации не откатывает выдачу: уведомление вторично.
func (s *Service) publishIssued(ctx context.Context, enrollment *models.Enrollment, cert *models.Certificate) {
	user, err := s.repo.GetUser(ctx, enrollment.UserID)
	if err != nil {
		s.log.Error("failed to load user for notification", sl.Err(err))
		return
	}
	course, err := s.repo.GetCourse(ctx, enrollment.CourseID)
	if err != nil {
		s.log.Error("failed to load course for notification", sl.Err(err))
		return
	}

	event := models.CertificateIssuedEvent{
		Email:             user.Email,
		FirstName:         user.FirstName,
		CourseTitle:       course.Title,
		CertificateNumber: cert.CertificateNumber,
		IssueDate:         cert.IssueDate,
	}
	if err := s.publisher.PublishCertificateIssued(event); err != nil {
		s.log.Error("failed to publish certificate.issued", sl.Err(err))
	}
}

// newCertificateNumber возвращает номер вида {courseId}-{8 hex}.
func newCertificateNumber(courseID int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", courseID, suffix)
}
