package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
	"github.com/magabrotheeeer/gym-membership/internal/migrations"
	analyticsservice "github.com/magabrotheeeer/gym-membership/internal/services/analytics"
	attendanceservice "github.com/magabrotheeeer/gym-membership/internal/services/attendance"
	authservice "github.com/magabrotheeeer/gym-membership/internal/services/auth"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
	paymentservice "github.com/magabrotheeeer/gym-membership/internal/services/payment"
	verificationservice "github.com/magabrotheeeer/gym-membership/internal/services/verification"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// App HTTP-сервер клуба со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New поднимает зависимости: базу с миграциями, Redis, брокер событий,
// создаёт администратора и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "gym.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var publisher verificationservice.Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		app.conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.ch, err = rabbitmq.SetupChannel(app.conn, cfg.Exchange, rabbitmq.GetEventQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(app.ch, cfg.Exchange)
		logger.Info("events are published to RabbitMQ", slog.String("exchange", cfg.Exchange))
	} else {
		logger.Warn("RabbitMQ is not configured, events are not published")
	}

	loc := cfg.Location()
	m := metrics.New(prometheus.DefaultRegisterer)

	authService := authservice.New(db, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL), logger)
	if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	services := Services{
		Auth:         authService,
		Members:      memberservice.New(db, cacheRedis, loc, logger),
		Attendance:   attendanceservice.New(db, loc, logger),
		Verification: verificationservice.New(db, cacheRedis, publisher, m, loc, cfg.CacheTTL, logger),
		Payments:     paymentservice.New(db, cacheRedis, loc, logger),
		Analytics:    analyticsservice.New(db, cacheRedis, loc, cfg.CacheTTL, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.Scanner, services, m, map[string]health.Checker{
		"postgres": db,
		"redis":    cacheRedis,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
