// Package attendancelist реализует HTTP-обработчик посещений за календарный день.
package attendancelist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/attendance"
)

// Service описывает выборку посещений по дате.
type Service interface {
	ListByDate(ctx context.Context, date string) ([]models.Attendance, error)
}

// Handler обрабатывает запросы посещений за день.
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
// @Summary Посещения за день
// @Description Возвращает посещения за календарный день с именами участников. Без даты возвращается пустой список.
// @Tags Attendance
// @Produce  json
// @Param date query string false "Дата в формате 2006-01-02"
// @Success 200 {array} models.Attendance
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /attendance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := r.URL.Query().Get("date")
	list, err := h.service.ListByDate(r.Context(), date)
	if errors.Is(err, attendance.ErrInvalidDate) {
		log.Warn("invalid date", slog.String("date", date))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date"))
		return
	}
	if err != nil {
		log.Error("failed to fetch attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch attendance"))
		return
	}
	if list == nil {
		list = []models.Attendance{}
	}

	log.Info("attendance listed", slog.String("date", date), slog.Int("count", len(list)))
	render.JSON(w, r, response.StatusOKWithData(list))
}
