package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

const courseColumns = `id, title, description, category, image_url, duration, price`

func scanCourse(scan func(dest ...any) error) (*models.Course, error) {
	c := &models.Course{}
	var price sql.NullInt64
	if err := scan(&c.ID, &c.Title, &c.Description, &c.Category,
		&c.ImageURL, &c.Duration, &price); err != nil {
		return nil, err
	}
	if price.Valid {
		p := int(price.Int64)
		c.Price = &p
	}
	return c, nil
}

// GetCourse возвращает курс по его ID.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.GetCourse"

	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	c, err := scanCourse(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListCourses возвращает все курсы каталога.
func (s *Storage) ListCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListCourses"

	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	return s.queryCourses(ctx, op, query)
}

// ListCoursesByCategory возвращает курсы указанной категории.
func (s *Storage) ListCoursesByCategory(ctx context.Context, category string) ([]*models.Course, error) {
	const op = "storage.ListCoursesByCategory"

	query := `SELECT ` + courseColumns + ` FROM courses WHERE category = $1 ORDER BY id`
	return s.queryCourses(ctx, op, query, category)
}

func (s *Storage) queryCourses(ctx context.Context, op, query string, args ...any) ([]*models.Course, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
