package bycategory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// Service возвращает курсы категории.
type Service interface {
	ListByCategory(ctx context.Context, category string) ([]*models.Course, error)
}

// Handler управляет HTTP-запросами фильтрации курсов по категории.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Курсы по категории
// @Description Возвращает курсы заданной категории. Пустая категория даёт пустой список.
// @Tags Courses
// @Produce  json
// @Param category path string true "Категория"
// @Success 200 {array} models.Course "Курсы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses/category/{category} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.bycategory"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := chi.URLParam(r, "category")

	courses, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		log.Error("failed to list courses by category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load courses"))
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	log.Info("courses listed by category",
		slog.String("category", category),
		slog.Int("count", len(courses)),
	)
	render.JSON(w, r, courses)
}
