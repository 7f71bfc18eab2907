// Package list реализует выдачу сертификатов пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/middlewarectx"
	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// Service возвращает сертификаты пользователя вместе с курсами.
type Service interface {
	ListForUser(ctx context.Context, userID int) ([]*models.CertificateWithCourse, error)
}

// Handler управляет HTTP-запросами списка сертификатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сертификаты пользователя
// @Description Возвращает сертификаты текущего пользователя, новые первыми.
// @Tags Certificates
// @Produce  json
// @Success 200 {array} models.CertificateWithCourse "Сертификаты"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /certificates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certificate.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	certificates, err := h.service.ListForUser(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list certificates", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load certificates"))
		return
	}
	if certificates == nil {
		certificates = []*models.CertificateWithCourse{}
	}

	log.Info("certificates listed",
		slog.Int("user_id", user.ID),
		slog.Int("count", len(certificates)),
	)
	render.JSON(w, r, certificates)
}
