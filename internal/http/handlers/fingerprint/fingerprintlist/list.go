// Package fingerprintlist реализует HTTP-обработчик списка зарегистрированных отпечатков.
// Список нужен сканеру для синхронизации шаблонов.
package fingerprintlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/services/verification"
)

// Item элемент списка отпечатков.
type Item struct {
	FingerprintID int64 `json:"fingerprintId"`
}

// Service описывает выборку отпечатков.
type Service interface {
	ListFingerprints(ctx context.Context) ([]int64, error)
}

// Handler обрабатывает запросы списка отпечатков.
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
// @Summary Список отпечатков
// @Tags Fingerprints
// @Produce  json
// @Success 200 {array} Item
// @Failure 404 {object} response.ErrorResponse "Нет участников с отпечатками"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /fingerprints/verification [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fingerprint.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fps, err := h.service.ListFingerprints(r.Context())
	if errors.Is(err, verification.ErrNoFingerprints) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.ErrorWithData("No members with fingerprint IDs found", []Item{}))
		return
	}
	if err != nil {
		log.Error("failed to list fingerprints", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	items := make([]Item, 0, len(fps))
	for _, fp := range fps {
		items = append(items, Item{FingerprintID: fp})
	}
	render.JSON(w, r, response.StatusOKWithData(items))
}
