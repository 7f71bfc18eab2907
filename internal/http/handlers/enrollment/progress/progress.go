package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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

// Request — новое значение прогресса. Указатель отличает
// отсутствующее поле от нулевого прогресса.
type Request struct {
	Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
}

// Service обновляет прогресс записи текущего пользователя.
type Service interface {
	UpdateProgress(ctx context.Context, enrollmentID, userID, progress int) (*models.Enrollment, error)
}

// Handler управляет HTTP-запросами обновления прогресса.
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
// @Summary Обновить прогресс
// @Description Обновляет прогресс записи. При достижении 100 процентов выдаётся сертификат.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param id path int true "ID записи"
// @Param request body Request true "Прогресс 0..100"
// @Success 200 {object} models.Enrollment "Обновлённая запись"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /enrollments/{id}/progress [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.progress"
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

	enrollmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid enrollment id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid enrollment ID"))
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

	enrollment, err := h.service.UpdateProgress(r.Context(), enrollmentID, user.ID, *req.Progress)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("enrollment not found"))
			return
		}
		log.Error("failed to update progress", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update progress"))
		return
	}

	log.Info("progress updated",
		slog.Int("enrollment_id", enrollmentID),
		slog.Int("progress", *req.Progress),
		slog.Bool("completed", enrollment.Completed),
	)
	render.JSON(w, r, enrollment)
}
