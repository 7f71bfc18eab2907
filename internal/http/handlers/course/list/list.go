// Package list реализует выдачу каталога курсов.
package list

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

// Service возвращает каталог курсов.
type Service interface {
	List(ctx context.Context) ([]*models.Course, error)
}

// Handler управляет HTTP-запросами списка курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Description Возвращает все курсы каталога.
// @Tags Courses
// @Produce  json
// @Success 200 {array} models.Course "Курсы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courses, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load courses"))
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	log.Info("courses listed", slog.Int("count", len(courses)))
	render.JSON(w, r, courses)
}
