package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/models"
)

const userColumns = `id, username, password_hash, first_name, last_name, email, phone`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var phone sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName,
		&u.LastName, &u.Email, &phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его со сгенерированным ID.
// Нарушение уникальности username или email возвращается как errs.ErrConflict
// с именем поля.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users (username, password_hash, first_name, last_name, email)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.FirstName, user.LastName,
		user.Email).Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return &user, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserEmail обновляет email пользователя.
func (s *Storage) UpdateUserEmail(ctx context.Context, userID int, email string) error {
	const op = "storage.UpdateUserEmail"

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET email = $1 WHERE id = $2`, email, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// UpdateUserPhone обновляет телефон пользователя.
func (s *Storage) UpdateUserPhone(ctx context.Context, userID int, phone string) error {
	const op = "storage.UpdateUserPhone"

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET phone = $1 WHERE id = $2`, phone, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// UpdateUserPassword обновляет хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(ctx context.Context, userID int, passwordHash string) error {
	const op = "storage.UpdateUserPassword"

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}
