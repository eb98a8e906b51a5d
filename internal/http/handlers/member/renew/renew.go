// Package renew реализует HTTP-обработчик продления абонемента с записью оплаты.
package renew

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/member"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Service описывает продление абонемента.
type Service interface {
	Renew(ctx context.Context, id uuid.UUID, req models.RenewRequest) (*models.Member, *models.Payment, error)
}

// Handler обрабатывает запросы на продление.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Продление абонемента
// @Description Продлевает абонемент на указанное число месяцев и записывает оплату одной транзакцией.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param id path string true "ID участника"
// @Param request body models.RenewRequest true "Срок и сумма"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или сумма"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /members/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.renew"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid member id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid member id"))
		return
	}

	var req models.RenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	m, p, err := h.service.Renew(r.Context(), id, req)
	if errors.Is(err, member.ErrInvalidAmount) {
		log.Warn("invalid renewal amount", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(member.ErrInvalidAmount.Error()))
		return
	}
	if errors.Is(err, repository.ErrMemberNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	}
	if err != nil {
		log.Error("failed to renew membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("membership renewed",
		slog.String("id", id.String()),
		slog.Int("months", req.Months),
	)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"member":  m,
		"payment": p,
	}))
}
