// Package session реализует серверное хранилище сессий поверх Redis.
//
// Сессия — это непрозрачный идентификатор (uuid), выданный браузеру
// в HTTP-only cookie. В хранилище сессия держит только id пользователя:
// полная запись пользователя перечитывается на каждом запросе, поэтому
// правки профиля видны сразу.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taallam/learning-platform/internal/config"
	"github.com/taallam/learning-platform/internal/lib/errs"
)

// Cache описывает необходимый срез key-value хранилища.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Store выдаёт, разрешает и уничтожает сессии.
type Store struct {
	cache Cache
	cfg   config.Session
}

// New создает новый Store.
func New(cache Cache, cfg config.Session) *Store {
	return &Store{cache: cache, cfg: cfg}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Create выдаёт новую сессию для пользователя и возвращает её идентификатор.
func (s *Store) Create(ctx context.Context, userID int) (string, error) {
	const op = "session.Create"
	sid := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKey(sid), userID, s.cfg.TTL); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sid, nil
}

// Resolve возвращает id пользователя по идентификатору сессии.
// Неизвестная или истёкшая сессия — errs.ErrUnauthorized.
func (s *Store) Resolve(ctx context.Context, sid string) (int, error) {
	const op = "session.Resolve"
	var userID int
	found, err := s.cache.Get(ctx, sessionKey(sid), &userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return 0, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	return userID, nil
}

// Destroy уничтожает сессию. Идемпотентна: удаление несуществующей
// сессии не является ошибкой.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	const op = "session.Destroy"
	if err := s.cache.Invalidate(ctx, sessionKey(sid)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NewCookie возвращает cookie сессии: HTTP-only, срок жизни равен TTL сессии.
func (s *Store) NewCookie(sid string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie возвращает cookie, немедленно удаляющую сессию из браузера.
func (s *Store) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName возвращает имя cookie, в которой передаётся идентификатор сессии.
func (s *Store) CookieName() string {
	return s.cfg.CookieName
}
