package middlewarectx

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
)

// DeviceKeyHeader заголовок, в котором сканер передаёт свой ключ.
const DeviceKeyHeader = "X-Device-Key"

// DeviceKey проверяет ключ сканера отпечатков. Пустой key отключает проверку.
func DeviceKey(key string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(DeviceKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				log.Error("invalid scanner device key",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("remote_addr", r.RemoteAddr),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid device key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
