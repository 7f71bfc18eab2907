// Package middlewarectx содержит HTTP middleware аутентификации по cookie-сессии.
//
// ResolveUser читает cookie сессии, разрешает её в хранилище сессий и кладёт
// в контекст запроса полную запись пользователя, перечитанную из базы.
// Запрос без сессии проходит дальше анонимным. RequireUser отклоняет
// анонимные запросы с HTTP 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для записи пользователя в контексте
const User Key = "user"

// SessionResolver описывает разрешение идентификатора сессии в id пользователя.
type SessionResolver interface {
	Resolve(ctx context.Context, sid string) (int, error)
	CookieName() string
}

// UserProvider описывает чтение пользователя из хранилища.
type UserProvider interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// ResolveUser возвращает middleware, который разрешает cookie-сессию
// в запись пользователя и кладёт её в контекст. Никогда не отклоняет запрос:
// анонимные и мутирующие маршруты сами решают через RequireUser.
//
// Сессия хранит только id пользователя, поэтому запись перечитывается
// на каждом запросе и правки профиля видны немедленно.
func ResolveUser(sessions SessionResolver, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.ResolveUser"

			cookie, err := r.Cookie(sessions.CookieName())
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userID, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				log.Info("stale or unknown session cookie", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				log.Error("session resolved but user missing", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser возвращает middleware, отклоняющий запросы без пользователя
// в контексте с HTTP 401.
func RequireUser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireUser"

			if _, ok := UserFromContext(r.Context()); !ok {
				log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				).Info("unauthenticated request rejected")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext достаёт запись пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}
