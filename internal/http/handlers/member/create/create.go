// Package create реализует HTTP-обработчик регистрации нового участника клуба.
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

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/member"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Service описывает создание участника.
type Service interface {
	Create(ctx context.Context, req models.MemberRequest) (*models.Member, error)
}

// Handler обрабатывает запросы на создание участника.
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
// @Summary Новый участник
// @Description Регистрирует участника клуба. Статус вычисляется по датам абонемента.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param request body models.MemberRequest true "Данные участника"
// @Success 201 {object} models.Member
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 409 {object} response.ErrorResponse "Отпечаток уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.MemberRequest
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

	m, err := h.service.Create(r.Context(), req)
	switch {
	case errors.Is(err, member.ErrInvalidDate):
		log.Warn("invalid subscription date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(member.ErrInvalidDate.Error()))
		return
	case errors.Is(err, member.ErrInvalidPeriod):
		log.Warn("invalid subscription period", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(member.ErrInvalidPeriod.Error()))
		return
	case errors.Is(err, repository.ErrFingerprintTaken):
		log.Warn("fingerprint already registered", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("fingerprint id is already registered"))
		return
	case err != nil:
		log.Error("failed to create member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("member created", slog.String("id", m.ID.String()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(m))
}
