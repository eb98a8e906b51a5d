// Package verification реализует проверку доступа по отпечатку пальца на входе в зал.
//
// Сканер передаёт числовой номер отпечатка. Сервис находит участника, пересчитывает
// и сохраняет статус абонемента, а при действующем абонементе отмечает посещение,
// но не чаще одного раза за календарный день.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/lib/month"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

var (
	// ErrInvalidFingerprint номер отпечатка не является положительным целым.
	ErrInvalidFingerprint = errors.New("invalid fingerprint id")
	// ErrNoFingerprints ни у одного участника нет отпечатка.
	ErrNoFingerprints = errors.New("no members with fingerprint ids found")
)

// MessageGranted текст ответа при открытом доступе.
const MessageGranted = "Access granted"

// Repository описывает хранилище, нужное для проверки.
type Repository interface {
	FindMemberByFingerprint(ctx context.Context, fingerprintID int64) (*models.Member, error)
	UpdateMemberStatus(ctx context.Context, id uuid.UUID, status models.MemberStatus) error
	RecordDailyAttendance(ctx context.Context, memberID uuid.UUID, at, dayStart time.Time) (bool, error)
	ListFingerprints(ctx context.Context) ([]int64, error)
}

// Publisher отправляет события о проходах.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Cache хранит список отпечатков.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Recorder учитывает результаты проверок.
type Recorder interface {
	CheckIn(result string)
}

// Result итог проверки. Access=false означает отказ в доступе.
type Result struct {
	Access          bool                 `json:"access"`
	Message         string               `json:"message"`
	Member          models.MemberSummary `json:"member"`
	CheckedInBefore bool                 `json:"checkedInBefore,omitempty"`
}

// Service проверяет доступ по отпечатку.
type Service struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	metrics   Recorder
	log       *slog.Logger
	loc       *time.Location
	cacheTTL  time.Duration
	now       func() time.Time
}

// New создаёт Service.
func New(repo Repository, cache Cache, publisher Publisher, metrics Recorder,
	loc *time.Location, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		loc:       loc,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Verify проверяет доступ участника с отпечатком fingerprintID.
// Отказ из-за статуса абонемента возвращается как Result с Access=false, а не как ошибка.
func (s *Service) Verify(ctx context.Context, fingerprintID int64) (*Result, error) {
	const op = "verification.Verify"

	if fingerprintID <= 0 {
		s.metrics.CheckIn(metrics.CheckInInvalid)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFingerprint)
	}

	member, err := s.repo.FindMemberByFingerprint(ctx, fingerprintID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			s.metrics.CheckIn(metrics.CheckInNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().In(s.loc)
	if member.UpdateStatus(now) {
		if err := s.repo.UpdateMemberStatus(ctx, member.ID, member.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("member status changed",
			slog.String("member_id", member.ID.String()),
			slog.String("status", string(member.Status)),
		)
	}

	if member.Status != models.StatusActive {
		s.metrics.CheckIn(metrics.CheckInDenied)
		s.publish(ctx, models.EventCheckInDenied, member, now, nil)
		return &Result{
			Access:  false,
			Message: fmt.Sprintf("Access denied. Member is %s", member.Status),
			Member:  member.Summary(),
		}, nil
	}

	created, err := s.repo.RecordDailyAttendance(ctx, member.ID, now, month.StartOfDay(now, s.loc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.CheckIn(metrics.CheckInGranted)
	s.publish(ctx, models.EventCheckInGranted, member, now, map[string]any{"attendanceRecorded": created})
	return &Result{
		Access:          true,
		Message:         MessageGranted,
		Member:          member.Summary(),
		CheckedInBefore: !created,
	}, nil
}

func (s *Service) publish(ctx context.Context, eventType string, member *models.Member, at time.Time, payload map[string]any) {
	event := models.NewEvent(eventType, member.ID, member.Name, at)
	event.Status = member.Status
	event.Payload = payload
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", eventType), sl.Err(err))
	}
}

// ListFingerprints возвращает зарегистрированные номера отпечатков по возрастанию.
func (s *Service) ListFingerprints(ctx context.Context) ([]int64, error) {
	const op = "verification.ListFingerprints"

	var fps []int64
	found, err := s.cache.Get(ctx, cache.FingerprintsKey, &fps)
	if err != nil {
		s.log.Warn("failed to read fingerprints from cache", sl.Err(err))
	}
	if !found {
		fps, err = s.repo.ListFingerprints(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.cache.Set(ctx, cache.FingerprintsKey, fps, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache fingerprints", sl.Err(err))
		}
	}

	if len(fps) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoFingerprints)
	}
	return fps, nil
}
