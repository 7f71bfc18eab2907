// Package storage реализует хранилище данных на основе PostgreSQL
// для платформы обучения. Предоставляет операции над пользователями,
// курсами, записями на курсы и сертификатами. Все проверки уникальности
// и выдача идентификаторов выполняются на стороне базы данных.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/taallam/learning-platform/internal/lib/errs"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// mapUniqueViolation переводит нарушение уникального ограничения PostgreSQL
// (код 23505) в errs.ErrConflict с именем поля, определённым по имени
// ограничения. Остальные ошибки возвращаются без изменений.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return errs.WithField("username", errs.ErrConflict)
	case strings.Contains(pgErr.ConstraintName, "email"):
		return errs.WithField("email", errs.ErrConflict)
	case strings.Contains(pgErr.ConstraintName, "certificate_number"):
		return errs.WithField("certificateNumber", errs.ErrConflict)
	default:
		return errs.ErrConflict
	}
}
