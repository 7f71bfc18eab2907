package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/taallam/learning-platform/internal/http/middlewarectx"
	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/lib/validate"
	"github.com/taallam/learning-platform/internal/models"
)

// Request — запрос на запись на курс.
type Request struct {
	CourseID int `json:"courseId" validate:"required,gt=0"`
}

// Service записывает пользователя на курс.
type Service interface {
	Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
}

// Handler управляет HTTP-запросами записи на курс.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validate.New()}
}

// ServeHTTP godoc
// @Summary Записаться на курс
// @Description Создает запись текущего пользователя на курс. Повторная запись отклоняется.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param request body Request true "ID курса"
// @Success 201 {object} models.Enrollment "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или повторная запись"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /enrollments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.create"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), user.ID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
		case errors.Is(err, errs.ErrConflict):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("already enrolled in this course"))
		default:
			log.Error("failed to enroll", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not enroll in course"))
		}
		return
	}

	log.Info("enrollment created",
		slog.Int("user_id", user.ID),
		slog.Int("course_id", req.CourseID),
	)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, enrollment)
}
