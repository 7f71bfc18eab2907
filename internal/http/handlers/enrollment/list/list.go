// Package list реализует выдачу записей пользователя на курсы.
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

// Service возвращает записи пользователя вместе с курсами.
type Service interface {
	ListForUser(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error)
}

// Handler управляет HTTP-запросами списка записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Записи на курсы
// @Description Возвращает записи текущего пользователя вместе с данными курсов.
// @Tags Enrollments
// @Produce  json
// @Success 200 {array} models.EnrollmentWithCourse "Записи"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"
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

	enrollments, err := h.service.ListForUser(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load enrollments"))
		return
	}
	if enrollments == nil {
		enrollments = []*models.EnrollmentWithCourse{}
	}

	log.Info("enrollments listed",
		slog.Int("user_id", user.ID),
		slog.Int("count", len(enrollments)),
	)
	render.JSON(w, r, enrollments)
}
