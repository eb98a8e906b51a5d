// Package scheduler периодически обходит абонементы: переводит истёкшие в Expired,
// начавшиеся в Active и публикует события о скором окончании, не чаще раза в день на участника.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/lib/month"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// MembershipRepository описывает операции над абонементами, нужные планировщику.
type MembershipRepository interface {
	ExpireMembers(ctx context.Context, today time.Time) ([]models.ExpiringMember, error)
	ActivateMembers(ctx context.Context, today time.Time) (int64, error)
	FindMembersExpiringBetween(ctx context.Context, from, to time.Time) ([]models.ExpiringMember, error)
}

// Publisher отправляет события об абонементах.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Recorder учитывает истёкшие абонементы.
type Recorder interface {
	Expired(n int)
}

// SchedulerService обходит абонементы с заданным интервалом.
type SchedulerService struct {
	repo           MembershipRepository
	publisher      Publisher
	metrics        Recorder
	log            *slog.Logger
	loc            *time.Location
	interval       time.Duration
	expiringWithin int
	now            func() time.Time

	mu sync.Mutex
	// announced день, за который участнику уже отправлено membership.expiring.
	announced map[uuid.UUID]time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo MembershipRepository, publisher Publisher, metrics Recorder, loc *time.Location,
	interval time.Duration, expiringWithin int, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:           repo,
		publisher:      publisher,
		metrics:        metrics,
		log:            log,
		loc:            loc,
		interval:       interval,
		expiringWithin: expiringWithin,
		now:            time.Now,
		announced:      make(map[uuid.UUID]time.Time),
	}
}

// Run выполняет обход сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context) {
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *SchedulerService) runSweep(ctx context.Context) {
	if err := s.Sweep(ctx); err != nil {
		s.log.Error("membership sweep finished with errors", sl.Err(err))
	}
}

// Sweep выполняет один обход. Ошибки отдельных шагов не прерывают остальные.
func (s *SchedulerService) Sweep(ctx context.Context) error {
	const op = "scheduler.Sweep"

	now := s.now().In(s.loc)
	today := month.Date(now)
	var errs []error

	activated, err := s.repo.ActivateMembers(ctx, today)
	if err != nil {
		errs = append(errs, err)
	} else if activated > 0 {
		s.log.Info("memberships activated", slog.Int64("count", activated))
	}

	expired, err := s.repo.ExpireMembers(ctx, today)
	if err != nil {
		errs = append(errs, err)
	} else {
		if len(expired) > 0 {
			s.log.Info("memberships expired", slog.Int("count", len(expired)))
		}
		s.metrics.Expired(len(expired))
		for _, m := range expired {
			event := models.NewEvent(models.EventMembershipExpired, m.ID, m.Name, now)
			event.Status = models.StatusExpired
			event.Payload = map[string]any{
				"phoneNumber":         m.PhoneNumber,
				"subscriptionEndDate": m.SubscriptionEndDate.Format(models.DateLayout),
			}
			s.publish(ctx, event)
		}
	}

	if s.expiringWithin > 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, day := range s.announced {
			if day.Before(today) {
				delete(s.announced, id)
			}
		}

		expiring, err := s.repo.FindMembersExpiringBetween(ctx, today, today.AddDate(0, 0, s.expiringWithin))
		if err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info("found expiring memberships", slog.Int("count", len(expiring)))
			for _, m := range expiring {
				if day, ok := s.announced[m.ID]; ok && day.Equal(today) {
					continue
				}
				event := models.NewEvent(models.EventMembershipExpiring, m.ID, m.Name, now)
				event.Status = models.StatusActive
				event.Payload = map[string]any{
					"phoneNumber":         m.PhoneNumber,
					"subscriptionEndDate": m.SubscriptionEndDate.Format(models.DateLayout),
					"daysLeft":            int(month.Date(m.SubscriptionEndDate).Sub(today).Hours() / 24),
				}
				if s.publish(ctx, event) {
					s.announced[m.ID] = today
				}
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SchedulerService) publish(ctx context.Context, event models.Event) bool {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("failed to publish message", slog.String("type", event.Type), sl.Err(err))
		return false
	}
	return true
}
