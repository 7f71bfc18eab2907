package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/sl"
)

// Sessions закрывает сессию и выдаёт просроченную cookie.
type Sessions interface {
	Destroy(ctx context.Context, sid string) error
	CookieName() string
	ExpiredCookie() *http.Cookie
}

// Handler управляет HTTP-запросами выхода.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создает новый Handler.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Удаляет серверную сессию и сбрасывает cookie. Идемпотентен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Выход выполнен"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(h.sessions.CookieName()); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			// Сессия истечёт сама по TTL, выход всё равно считается успешным.
			log.Warn("failed to destroy session", sl.Err(err))
		}
	}
	http.SetCookie(w, h.sessions.ExpiredCookie())

	log.Info("logout complete")
	render.JSON(w, r, response.OKMessage("logged out successfully"))
}
