// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Handler валидирует данные формы (формат имени пользователя, сложность
// пароля, совпадение подтверждения, принятие условий), создаёт пользователя
// и сразу открывает для него сессию: после регистрации пользователь
// аутентифицирован без отдельного входа.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/lib/validate"
	"github.com/taallam/learning-platform/internal/models"
	authservice "github.com/taallam/learning-platform/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Username        string `json:"username" validate:"required,username_format"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password_complexity"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Terms           bool   `json:"terms" validate:"terms_accepted"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, data authservice.RegisterData) (*models.User, error)
}

// Sessions описывает открытие сессии для нового пользователя.
type Sessions interface {
	Create(ctx context.Context, userID int) (string, error)
	NewCookie(sid string) *http.Cookie
}

// Handler управляет HTTP-запросами регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать пользователя
// @Description Создает учётную запись и открывает сессию. Возвращает пользователя без пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или конфликт уникальности"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("register request received", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Register(r.Context(), authservice.RegisterData{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			field := errs.Field(err)
			log.Info("registration conflict", slog.String("field", field))
			render.Status(r, http.StatusBadRequest)
			switch field {
			case "email":
				render.JSON(w, r, response.FieldConflict("email already in use", field))
			default:
				render.JSON(w, r, response.FieldConflict("username already taken", "username"))
			}
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	sid, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to create session after registration", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}
	http.SetCookie(w, h.sessions.NewCookie(sid))

	log.Info("registration complete", slog.Int("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKUser(user))
}
