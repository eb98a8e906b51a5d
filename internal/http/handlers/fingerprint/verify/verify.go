// Package verify реализует HTTP-обработчик проверки доступа по отпечатку пальца.
//
// Номер отпечатка берётся из пути (/verification/{fingerprintId}). Старый клиент сканера
// присылает его в теле запроса {"fingerprintId": n}, этот вариант тоже поддерживается.
// Ответы: 200 доступ разрешён, 403 абонемент неактивен, 400 некорректный номер,
// 404 участник не найден.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/services/verification"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// URLParam имя параметра пути с номером отпечатка.
const URLParam = "fingerprintId"

// Request тело запроса старого клиента сканера.
type Request struct {
	FingerprintID json.Number `json:"fingerprintId"`
}

// Service описывает проверку доступа.
type Service interface {
	Verify(ctx context.Context, fingerprintID int64) (*verification.Result, error)
}

// Handler обрабатывает запросы сканера.
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
// @Summary Проверка доступа по отпечатку
// @Description Находит участника по номеру отпечатка, пересчитывает статус абонемента и
// @Description при активном абонементе отмечает посещение не чаще раза в день.
// @Tags Fingerprints
// @Produce  json
// @Param fingerprintId path int true "Номер отпечатка"
// @Success 200 {object} verification.Result "Доступ разрешён"
// @Failure 400 {object} response.ErrorResponse "Некорректный номер отпечатка"
// @Failure 403 {object} verification.Result "Абонемент неактивен"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Param X-Device-Key header string false "Ключ сканера"
// @Router /fingerprints/verification/{fingerprintId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fingerprint.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	raw := chi.URLParam(r, URLParam)
	if raw == "" {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid fingerprint ID"))
			return
		}
		raw = req.FingerprintID.String()
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn("fingerprint id is not a number", slog.String("fingerprint_id", raw))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid fingerprint ID"))
		return
	}
	log = log.With(slog.Int64("fingerprint_id", id))

	res, err := h.service.Verify(r.Context(), id)
	switch {
	case errors.Is(err, verification.ErrInvalidFingerprint):
		log.Warn("invalid fingerprint id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid fingerprint ID"))
		return
	case errors.Is(err, repository.ErrMemberNotFound):
		log.Info("no member for fingerprint")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("No member found for this fingerprint ID"))
		return
	case err != nil:
		log.Error("verification failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	if !res.Access {
		log.Info("access denied", slog.String("status", string(res.Member.Status)))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.ErrorWithData(res.Message, res))
		return
	}

	log.Info("access granted", slog.Bool("checked_in_before", res.CheckedInBefore))
	render.JSON(w, r, response.StatusOKWithData(res))
}
