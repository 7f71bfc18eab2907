package updatephone

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

// Request — новый номер телефона и текущий пароль для подтверждения.
type Request struct {
	Phone    string `json:"phone" validate:"required,min=5,max=20"`
	Password string `json:"password" validate:"required"`
}

// Service меняет номер телефона после проверки пароля.
type Service interface {
	UpdatePhone(ctx context.Context, userID int, newPhone, currentPassword string) (*models.User, error)
}

// Handler управляет HTTP-запросами смены телефона.
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
// @Summary Сменить телефон
// @Description Меняет номер телефона текущего пользователя после проверки пароля.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Новый номер и текущий пароль"
// @Success 200 {object} response.Response "Номер обновлён"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль или нет сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/phone [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.updatephone"
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

	updated, err := h.service.UpdatePhone(r.Context(), user.ID, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect password"))
			return
		}
		log.Error("failed to update phone", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update phone"))
		return
	}

	log.Info("phone updated", slog.Int("user_id", user.ID))
	render.JSON(w, r, response.OKUserMessage(updated, "phone updated successfully"))
}
