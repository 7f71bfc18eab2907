package verify

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/taallam/learning-platform/internal/http/response"
	"github.com/taallam/learning-platform/internal/lib/sl"
	certservice "github.com/taallam/learning-platform/internal/services/certificate"
)

// Service проверяет подлинность сертификата по его номеру.
type Service interface {
	Verify(ctx context.Context, number string) (*certservice.VerifyResult, error)
}

// Handler управляет HTTP-запросами проверки сертификатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверить сертификат
// @Description Публичная проверка по номеру. Неизвестный номер не ошибка, ответ содержит verified false.
// @Tags Certificates
// @Produce  json
// @Param number path string true "Номер сертификата"
// @Success 200 {object} certservice.VerifyResult "Результат проверки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /certificates/verify/{number} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.certificate.verify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	number := chi.URLParam(r, "number")

	result, err := h.service.Verify(r.Context(), number)
	if err != nil {
		log.Error("failed to verify certificate", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not verify certificate"))
		return
	}

	log.Info("certificate verified",
		slog.String("number", number),
		slog.Bool("verified", result.Verified),
	)
	render.JSON(w, r, result)
}
