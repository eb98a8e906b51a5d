// Package gym собирает HTTP API клуба: зависимости, маршруты и жизненный цикл сервера.
package gym

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/analytics"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/attendance/attendancecreate"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/attendance/attendancelist"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/fingerprint/fingerprintlist"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/fingerprint/verify"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/create"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/read"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/remove"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/renew"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/update"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/visits"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/payment/paymentremove"
	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	analyticsservice "github.com/magabrotheeeer/gym-membership/internal/services/analytics"
	attendanceservice "github.com/magabrotheeeer/gym-membership/internal/services/attendance"
	authservice "github.com/magabrotheeeer/gym-membership/internal/services/auth"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
	paymentservice "github.com/magabrotheeeer/gym-membership/internal/services/payment"
	verificationservice "github.com/magabrotheeeer/gym-membership/internal/services/verification"
)

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Auth         *authservice.Service
	Members      *memberservice.Service
	Attendance   *attendanceservice.Service
	Verification *verificationservice.Service
	Payments     *paymentservice.Service
	Analytics    *analyticsservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.Scanner, s Services, m *metrics.Metrics,
	checkers map[string]health.Checker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		m.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, checkers).ServeHTTP)

		// Сканер отпечатков: ключ устройства и ограничение частоты.
		// URLFormat сюда не подключается, иначе "12.5" превращается в номер 12.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.DeviceKey(cfg.DeviceKey, logger))
			r.Use(middlewarectx.RateLimitMiddleware(cfg.RateLimit, cfg.Burst, logger))
			verifyHandler := verify.New(logger, s.Verification).ServeHTTP
			r.Post("/fingerprints/verification/fp", verifyHandler)
			r.Post("/fingerprints/verification/{"+verify.URLParam+"}", verifyHandler)
			r.Get("/fingerprints/verification/{"+verify.URLParam+"}", verifyHandler)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middleware.URLFormat)
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))

			r.Get("/fingerprints/verification", fingerprintlist.New(logger, s.Verification).ServeHTTP)

			r.Get("/attendance", attendancelist.New(logger, s.Attendance).ServeHTTP)
			r.Post("/attendance", attendancecreate.New(logger, s.Attendance).ServeHTTP)

			r.Get("/members", list.New(logger, s.Members).ServeHTTP)
			r.Post("/members", create.New(logger, s.Members).ServeHTTP)
			r.Get("/members/{id}", read.New(logger, s.Members).ServeHTTP)
			r.Put("/members/{id}", update.New(logger, s.Members).ServeHTTP)
			r.Post("/members/{id}/renew", renew.New(logger, s.Members).ServeHTTP)
			r.Get("/members/{id}/attendance", visits.New(logger, s.Members).ServeHTTP)

			r.Get("/payments", paymentlist.New(logger, s.Payments).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, s.Payments).ServeHTTP)

			r.Get("/analytics", analytics.New(logger, s.Analytics).ServeHTTP)

			// Только администратор
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
				r.Delete("/members/{id}", remove.New(logger, s.Members).ServeHTTP)
				r.Delete("/payments/{id}", paymentremove.New(logger, s.Payments).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
