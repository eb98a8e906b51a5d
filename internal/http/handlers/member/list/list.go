// Package list реализует HTTP-обработчик постраничного списка участников
// с фильтром по статусу и поиском по имени или телефону.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Service описывает выборку участников.
type Service interface {
	List(ctx context.Context, filter models.MemberFilter) ([]*models.Member, error)
}

// Handler обрабатывает запросы списка участников.
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
// @Summary Список участников
// @Tags Members
// @Produce  json
// @Param status query string false "Active, Expired или Pending"
// @Param search query string false "Часть имени или телефона"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Member
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := models.MemberFilter{
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := q.Get("status"); raw != "" {
		status := models.MemberStatus(raw)
		switch status {
		case models.StatusActive, models.StatusExpired, models.StatusPending:
			filter.Status = &status
		default:
			log.Warn("unknown status filter", slog.String("status", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("status must be one of: Active, Expired, Pending"))
			return
		}
	}

	members, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if members == nil {
		members = []*models.Member{}
	}

	log.Info("members listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(members))
}
