// Package paymentcreate реализует HTTP-обработчик записи оплаты абонемента.
package paymentcreate

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
	"github.com/magabrotheeeer/gym-membership/internal/services/payment"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Service описывает запись оплаты.
type Service interface {
	Create(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
}

// Handler обрабатывает запросы на запись оплаты.
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
// @Summary Новая оплата
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.PaymentRequest true "Оплата"
// @Success 201 {object} models.Payment
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PaymentRequest
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

	p, err := h.service.Create(r.Context(), req)
	switch {
	case errors.Is(err, payment.ErrInvalidMemberID),
		errors.Is(err, payment.ErrInvalidDate),
		errors.Is(err, payment.ErrInvalidAmount):
		log.Warn("invalid payment", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(paymentErrorMessage(err)))
		return
	case errors.Is(err, repository.ErrMemberNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	case err != nil:
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("payment created", slog.Int64("id", p.ID), slog.String("member_id", p.MemberID.String()))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(p))
}

func paymentErrorMessage(err error) string {
	for _, known := range []error{payment.ErrInvalidMemberID, payment.ErrInvalidDate, payment.ErrInvalidAmount} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "invalid payment"
}
