// Package attendancecreate реализует HTTP-обработчик ручной отметки посещения.
package attendancecreate

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
	"github.com/magabrotheeeer/gym-membership/internal/services/attendance"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Service описывает запись посещения.
type Service interface {
	Record(ctx context.Context, req models.AttendanceRequest) (*models.Attendance, error)
}

// Handler обрабатывает ручные отметки посещений.
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
// @Summary Ручная отметка посещения
// @Tags Attendance
// @Accept  json
// @Produce  json
// @Param request body models.AttendanceRequest true "Участник и дата"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /attendance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AttendanceRequest
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

	a, err := h.service.Record(r.Context(), req)
	switch {
	case errors.Is(err, attendance.ErrInvalidDate):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date"))
		return
	case errors.Is(err, attendance.ErrInvalidMemberID):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid member id"))
		return
	case errors.Is(err, repository.ErrMemberNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	case err != nil:
		log.Error("failed to record attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to record attendance"))
		return
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(a))
}
