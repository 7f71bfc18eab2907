package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

const enrollmentColumns = `id, user_id, course_id, progress, completed, certificate_id,
			      enrolled_at, completed_at`

func scanEnrollment(scan func(dest ...any) error) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	var certificateID sql.NullInt64
	var completedAt sql.NullTime
	if err := scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.Completed,
		&certificateID, &e.EnrolledAt, &completedAt); err != nil {
		return nil, err
	}
	if certificateID.Valid {
		id := int(certificateID.Int64)
		e.CertificateID = &id
	}
	if completedAt.Valid {
		e.CompletedAt = &completedAt.Time
	}
	return e, nil
}

// CreateEnrollment записывает пользователя на курс и возвращает созданную запись.
// Повторная запись на тот же курс нарушает уникальное ограничение
// (user_id, course_id) и возвращается как errs.ErrConflict.
func (s *Storage) CreateEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	const op = "storage.CreateEnrollment"

	query := `INSERT INTO enrollments (user_id, course_id)
			  VALUES ($1, $2)
			  RETURNING ` + enrollmentColumns
	row := s.DB.QueryRowContext(ctx, query, userID, courseID)
	e, err := scanEnrollment(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return e, nil
}

// GetEnrollment возвращает запись пользователя на курс, если она существует.
func (s *Storage) GetEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	const op = "storage.GetEnrollment"

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments
			  WHERE user_id = $1 AND course_id = $2`
	row := s.DB.QueryRowContext(ctx, query, userID, courseID)
	e, err := scanEnrollment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ListEnrollmentsForUser возвращает все записи пользователя вместе с курсами.
func (s *Storage) ListEnrollmentsForUser(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error) {
	const op = "storage.ListEnrollmentsForUser"

	query := `SELECT e.id, e.user_id, e.course_id, e.progress, e.completed,
			      e.certificate_id, e.enrolled_at, e.completed_at,
			      c.id, c.title, c.description, c.category, c.image_url, c.duration, c.price
			  FROM enrollments e
			  JOIN courses c ON c.id = e.course_id
			  WHERE e.user_id = $1
			  ORDER BY e.enrolled_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EnrollmentWithCourse
	for rows.Next() {
		item := &models.EnrollmentWithCourse{Course: &models.Course{}}
		var certificateID, price sql.NullInt64
		var completedAt sql.NullTime
		if err = rows.Scan(&item.ID, &item.UserID, &item.CourseID, &item.Progress,
			&item.Completed, &certificateID, &item.EnrolledAt, &completedAt,
			&item.Course.ID, &item.Course.Title, &item.Course.Description,
			&item.Course.Category, &item.Course.ImageURL, &item.Course.Duration,
			&price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if certificateID.Valid {
			id := int(certificateID.Int64)
			item.CertificateID = &id
		}
		if completedAt.Valid {
			item.CompletedAt = &completedAt.Time
		}
		if price.Valid {
			p := int(price.Int64)
			item.Course.Price = &p
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEnrollmentProgress выставляет прогресс записи в одной транзакции.
//
// Строка блокируется через SELECT ... FOR UPDATE, поэтому два одновременных
// обновления до 100 процентов не выдадут два сертификата. Если прогресс
// достигает 100 и сертификат ещё не выдан, той же транзакцией создаётся
// и привязывается сертификат с номером newCertNumber(courseID), запись
// помечается завершённой. Повторное завершение идемпотентно.
//
// Возвращает обновлённую запись и сертификат, если он был выдан этим вызовом.
// Запись, не принадлежащая userID, неотличима от отсутствующей: errs.ErrNotFound.
func (s *Storage) UpdateEnrollmentProgress(ctx context.Context, enrollmentID, userID, progress int, newCertNumber func(courseID int) string) (*models.Enrollment, *models.Certificate, error) {
	const op = "storage.UpdateEnrollmentProgress"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments
			  WHERE id = $1 AND user_id = $2
			  FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, enrollmentID, userID)
	e, err := scanEnrollment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var issued *models.Certificate
	if progress == 100 && e.CertificateID == nil {
		cert := &models.Certificate{
			UserID:            e.UserID,
			CourseID:          e.CourseID,
			CertificateNumber: newCertNumber(e.CourseID),
		}
		insertCert := `INSERT INTO certificates (user_id, course_id, certificate_number)
				  VALUES ($1, $2, $3)
				  RETURNING id, issue_date`
		if err = tx.QueryRowContext(ctx, insertCert, cert.UserID, cert.CourseID,
			cert.CertificateNumber).Scan(&cert.ID, &cert.IssueDate); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
		}

		complete := `UPDATE enrollments
				  SET progress = $1, completed = TRUE, certificate_id = $2,
				      completed_at = now()
				  WHERE id = $3
				  RETURNING ` + enrollmentColumns
		row = tx.QueryRowContext(ctx, complete, progress, cert.ID, enrollmentID)
		if e, err = scanEnrollment(row.Scan); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		issued = cert
	} else {
		update := `UPDATE enrollments
				  SET progress = $1, completed = ($1 = 100 OR completed)
				  WHERE id = $2
				  RETURNING ` + enrollmentColumns
		row = tx.QueryRowContext(ctx, update, progress, enrollmentID)
		if e, err = scanEnrollment(row.Scan); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, issued, nil
}
