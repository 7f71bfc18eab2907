package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

const certificateColumns = `id, user_id, course_id, certificate_number, issue_date`

func scanCertificate(scan func(dest ...any) error) (*models.Certificate, error) {
	c := &models.Certificate{}
	if err := scan(&c.ID, &c.UserID, &c.CourseID, &c.CertificateNumber,
		&c.IssueDate); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCertificate возвращает сертификат по его ID.
func (s *Storage) GetCertificate(ctx context.Context, id int) (*models.Certificate, error) {
	const op = "storage.GetCertificate"

	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	c, err := scanCertificate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCertificateByNumber возвращает сертификат по его публичному номеру.
func (s *Storage) GetCertificateByNumber(ctx context.Context, number string) (*models.Certificate, error) {
	const op = "storage.GetCertificateByNumber"

	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE certificate_number = $1`
	row := s.DB.QueryRowContext(ctx, query, number)
	c, err := scanCertificate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListCertificatesForUser возвращает все сертификаты пользователя вместе с курсами.
func (s *Storage) ListCertificatesForUser(ctx context.Context, userID int) ([]*models.CertificateWithCourse, error) {
	const op = "storage.ListCertificatesForUser"

	query := `SELECT cert.id, cert.user_id, cert.course_id, cert.certificate_number,
			      cert.issue_date,
			      c.id, c.title, c.description, c.category, c.image_url, c.duration, c.price
			  FROM certificates cert
			  JOIN courses c ON c.id = cert.course_id
			  WHERE cert.user_id = $1
			  ORDER BY cert.issue_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CertificateWithCourse
	for rows.Next() {
		item := &models.CertificateWithCourse{Course: &models.Course{}}
		var price sql.NullInt64
		if err = rows.Scan(&item.ID, &item.UserID, &item.CourseID,
			&item.CertificateNumber, &item.IssueDate,
			&item.Course.ID, &item.Course.Title, &item.Course.Description,
			&item.Course.Category, &item.Course.ImageURL, &item.Course.Duration,
			&price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
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
