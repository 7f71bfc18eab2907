package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/middlewarectx"
	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/errs"
	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/models"
)

// Service возвращает сертификат с данными курса и владельца.
// viewerID равный нулю означает анонимного посетителя.
type Service interface {
	Get(ctx context.Context, id, viewerID int) (*models.CertificateDetails, error)
}

// Handler управляет HTTP-запросами чтения сертификата.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить сертификат
// @Description Возвращает сертификат по ID. Доступен анонимно, но чужой сертификат закрыт для других вошедших пользователей.
// @Tags Certificates
// @Produce  json
// @Param id path int true "ID сертификата"
// @Success 200 {object} models.CertificateDetails "Сертификат"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Сертификат принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Сертификат не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /certificates/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certificate.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid certificate id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid certificate ID"))
		return
	}

	viewerID := 0
	if user, ok := middlewarectx.UserFromContext(r.Context()); ok {
		viewerID = user.ID
	}

	details, err := h.service.Get(r.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("certificate not found"))
		case errors.Is(err, errs.ErrForbidden):
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("not authorized to view this certificate"))
		default:
			log.Error("failed to get certificate", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not load certificate"))
		}
		return
	}

	log.Info("certificate read", slog.Int("certificate_id", id))
	render.JSON(w, r, details)
}
