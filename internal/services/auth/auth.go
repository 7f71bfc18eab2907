// Package auth содержит логику бизнес-уровня для регистрации, входа
// и изменения профиля пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/lib/password"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с присвоенным ID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает пользователя по ID, errs.ErrNotFound если не найден.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени, errs.ErrNotFound если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email, errs.ErrNotFound если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserEmail обновляет email пользователя.
	UpdateUserEmail(ctx context.Context, userID int, email string) error
	// UpdateUserPhone обновляет телефон пользователя.
	UpdateUserPhone(ctx context.Context, userID int, phone string) error
	// UpdateUserPassword обновляет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, userID int, passwordHash string) error
}

// RegisterData — проверенные данные регистрации нового пользователя.
type RegisterData struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// Service отвечает за регистрацию, аутентификацию и мутации профиля.
type Service struct {
	users UserRepository
	log   *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, log *slog.Logger) *Service {
	return &Service{
		users: users,
		log:   log,
	}
}

// Register создает нового пользователя. Уникальность username и email
// проверяется до хэширования пароля; нарушение возвращается как
// errs.ErrConflict с именем занятого поля. База данных страхует проверку
// уникальным ограничением на случай гонки.
func (s *Service) Register(ctx context.Context, data RegisterData) (*models.User, error) {
	const op = "auth.Register"

	if _, err := s.users.GetUserByUsername(ctx, data.Username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, errs.WithField("username", errs.ErrConflict))
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.users.GetUserByEmail(ctx, data.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, errs.WithField("email", errs.ErrConflict))
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:     data.Username,
		PasswordHash: hash,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.Int("user_id", user.ID))
	return user, nil
}

// Login аутентифицирует пользователя по имени и паролю.
//
// Отсутствующий пользователь и неверный пароль возвращают одну и ту же
// ошибку errs.ErrInvalidCredentials: ответ не раскрывает, что именно
// оказалось неверным. Повреждённый хэш в хранилище различим только в логах.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, errs.ErrMalformedHash) {
			s.log.Error("corrupt password record", slog.Int("user_id", user.ID), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}
	return user, nil
}

// verifyCurrentPassword перечитывает пользователя и сверяет текущий пароль.
// Любая мутация профиля требует этой проверки.
func (s *Service) verifyCurrentPassword(ctx context.Context, op string, userID int, currentPassword string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = password.Compare(user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, errs.ErrMalformedHash) {
			s.log.Error("corrupt password record", slog.Int("user_id", user.ID), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}
	return user, nil
}

// UpdateEmail меняет email пользователя после проверки текущего пароля.
// Email, занятый другим пользователем, возвращается как errs.ErrConflict.
func (s *Service) UpdateEmail(ctx context.Context, userID int, newEmail, currentPassword string) (*models.User, error) {
	const op = "auth.UpdateEmail"

	if _, err := s.verifyCurrentPassword(ctx, op, userID, currentPassword); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, newEmail)
	if err == nil && existing.ID != userID {
		return nil, fmt.Errorf("%s: %w", op, errs.WithField("email", errs.ErrConflict))
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.users.UpdateUserEmail(ctx, userID, newEmail); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user email updated", slog.Int("user_id", userID))
	return user, nil
}

// UpdatePhone меняет телефон пользователя после проверки текущего пароля.
func (s *Service) UpdatePhone(ctx context.Context, userID int, newPhone, currentPassword string) (*models.User, error) {
	const op = "auth.UpdatePhone"

	if _, err := s.verifyCurrentPassword(ctx, op, userID, currentPassword); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUserPhone(ctx, userID, newPhone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user phone updated", slog.Int("user_id", userID))
	return user, nil
}

// UpdatePassword меняет пароль пользователя после проверки текущего.
func (s *Service) UpdatePassword(ctx context.Context, userID int, newPassword, currentPassword string) error {
	const op = "auth.UpdatePassword"

	if _, err := s.verifyCurrentPassword(ctx, op, userID, currentPassword); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user password updated", slog.Int("user_id", userID))
	return nil
}
