// Package update реализует HTTP-обработчик изменения данных участника.
package update

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

// Service описывает изменение участника.
type Service interface {
	Update(ctx context.Context, id uuid.UUID, req models.MemberRequest) (*models.Member, error)
}

// Handler обрабатывает запросы на изменение участника.
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
// @Summary Изменение участника
// @Description Полностью заменяет данные участника, статус пересчитывается.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param id path string true "ID участника"
// @Param request body models.MemberRequest true "Данные участника"
// @Success 200 {object} models.Member
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 409 {object} response.ErrorResponse "Отпечаток уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.update"

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

	m, err := h.service.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, member.ErrInvalidDate):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(member.ErrInvalidDate.Error()))
		return
	case errors.Is(err, member.ErrInvalidPeriod):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(member.ErrInvalidPeriod.Error()))
		return
	case errors.Is(err, repository.ErrMemberNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	case errors.Is(err, repository.ErrFingerprintTaken):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("fingerprint id is already registered"))
		return
	case err != nil:
		log.Error("failed to update member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("member updated", slog.String("id", id.String()))
	render.JSON(w, r, response.StatusOKWithData(m))
}
