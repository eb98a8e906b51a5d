// Package analytics реализует HTTP-обработчик дашборда выручки.
package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Service описывает расчёт выручки.
type Service interface {
	Revenue(ctx context.Context) (*models.Analytics, error)
}

// Handler обрабатывает запросы аналитики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выручка по месяцам и годам
// @Description Суммы платежей и число платящих участников по месяцам (в хронологическом порядке) и годам.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} models.Analytics
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	data, err := h.service.Revenue(r.Context())
	if err != nil {
		log.Error("failed to build analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch analytics"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(data))
}
