// Package errs определяет доменные ошибки платформы обучения.
// Обработчики HTTP сопоставляют эти ошибки с кодами ответов,
// сервисный слой возвращает их как есть или оборачивает через %w.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — запрошенная сущность не существует.
	ErrNotFound = errors.New("not found")
	// ErrConflict — нарушение уникальности (username, email, повторная запись на курс).
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials — неверная пара логин/пароль. Не различает,
	// что именно неверно: имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized — запрос без действующей сессии.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")
	// ErrMalformedHash — повреждённая запись хэша пароля в хранилище.
	// Отличается от неверного пароля только в логах, для клиента оба — отказ.
	ErrMalformedHash = errors.New("malformed password hash")
)

// FieldError связывает ошибку с конкретным полем запроса,
// например конфликт уникальности username или email.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// WithField оборачивает err с указанием имени поля.
func WithField(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// Field возвращает имя поля, если err содержит FieldError, иначе пустую строку.
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
