// Package member содержит бизнес-логику учёта участников клуба:
// оформление, изменение, продление абонемента и выборку списков.
package member

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
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

var (
	// ErrInvalidDate дата абонемента не разобрана.
	ErrInvalidDate = errors.New("invalid subscription date")
	// ErrInvalidPeriod дата окончания раньше даты начала.
	ErrInvalidPeriod = errors.New("subscription end date is before start date")
	// ErrInvalidAmount сумма продления меньше копейки или не помещается в колонку.
	ErrInvalidAmount = errors.New("amount must be between 0.01 and 9999999999.99")
)

const (
	// DefaultLimit размер страницы по умолчанию.
	DefaultLimit = 50
	// MaxLimit максимальный размер страницы.
	MaxLimit = 200
)

// Repository описывает хранилище участников.
type Repository interface {
	CreateMember(ctx context.Context, m models.Member) (*models.Member, error)
	ReadMember(ctx context.Context, id uuid.UUID) (*models.Member, error)
	UpdateMember(ctx context.Context, m models.Member) (*models.Member, error)
	UpdateMemberStatus(ctx context.Context, id uuid.UUID, status models.MemberStatus) error
	RemoveMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, filter models.MemberFilter) ([]*models.Member, error)
	RenewMembership(ctx context.Context, m models.Member, payment models.Payment) (*models.Member, *models.Payment, error)
	ListMemberAttendance(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Attendance, error)
}

// Cache сбрасывает снимки, зависящие от участников.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Service управляет участниками.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	loc   *time.Location
	now   func() time.Time
}

// New создаёт Service. Статусы абонементов считаются по календарю loc.
func New(repo Repository, cache Cache, loc *time.Location, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		loc:   loc,
		now:   time.Now,
	}
}

func (s *Service) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func (s *Service) fromRequest(req models.MemberRequest) (models.Member, error) {
	start, err := time.Parse(models.DateLayout, req.SubscriptionStartDate)
	if err != nil {
		return models.Member{}, fmt.Errorf("%w: subscriptionStartDate", ErrInvalidDate)
	}
	end, err := time.Parse(models.DateLayout, req.SubscriptionEndDate)
	if err != nil {
		return models.Member{}, fmt.Errorf("%w: subscriptionEndDate", ErrInvalidDate)
	}
	if end.Before(start) {
		return models.Member{}, ErrInvalidPeriod
	}

	m := models.Member{
		Name:                  req.Name,
		PhoneNumber:           req.PhoneNumber,
		MembershipType:        req.MembershipType,
		FingerprintID:         req.FingerprintID,
		SubscriptionStartDate: start,
		SubscriptionEndDate:   end,
	}
	m.Status = m.StatusAt(s.localNow())
	return m, nil
}

// Create оформляет нового участника. Статус выводится из дат абонемента.
func (s *Service) Create(ctx context.Context, req models.MemberRequest) (*models.Member, error) {
	const op = "member.Create"

	m, err := s.fromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.repo.CreateMember(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member created", slog.String("id", created.ID.String()), slog.String("status", string(created.Status)))

	if created.FingerprintID != nil {
		s.invalidate(ctx, cache.FingerprintsKey)
	}
	return created, nil
}

// Read возвращает участника. Если статус успел устареть, он пересчитывается и сохраняется.
func (s *Service) Read(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	const op = "member.Read"

	m, err := s.repo.ReadMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if m.UpdateStatus(s.localNow()) {
		if err := s.repo.UpdateMemberStatus(ctx, m.ID, m.Status); err != nil {
			s.log.Warn("failed to persist member status", slog.String("id", m.ID.String()), sl.Err(err))
		}
	}
	return m, nil
}

// Update перезаписывает данные участника.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.MemberRequest) (*models.Member, error) {
	const op = "member.Update"

	m, err := s.fromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.ID = id
	updated, err := s.repo.UpdateMember(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member updated", slog.String("id", id.String()))

	s.invalidate(ctx, cache.FingerprintsKey)
	return updated, nil
}

// Remove удаляет участника вместе с посещениями и платежами.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	const op = "member.Remove"

	if err := s.repo.RemoveMember(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member removed", slog.String("id", id.String()))

	s.invalidate(ctx, cache.FingerprintsKey, cache.AnalyticsRevenueKey)
	return nil
}

// List возвращает страницу участников. Статусы в ответе пересчитаны на текущий момент.
func (s *Service) List(ctx context.Context, filter models.MemberFilter) ([]*models.Member, error) {
	const op = "member.List"

	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	members, err := s.repo.ListMembers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.localNow()
	for _, m := range members {
		m.UpdateStatus(now)
	}
	return members, nil
}

// Renew продлевает абонемент на req.Months месяцев и записывает оплату.
// Действующий абонемент продлевается от даты окончания, истёкший начинается заново с сегодняшнего дня.
func (s *Service) Renew(ctx context.Context, id uuid.UUID, req models.RenewRequest) (*models.Member, *models.Payment, error) {
	const op = "member.Renew"

	amount, ok := models.NormalizeAmount(req.Amount)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}

	m, err := s.repo.ReadMember(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.localNow()
	today := month.Date(now)
	if m.SubscriptionEndDate.Before(today) {
		m.SubscriptionStartDate = today
		m.SubscriptionEndDate = month.AddMonths(today, req.Months)
	} else {
		m.SubscriptionEndDate = month.AddMonths(month.Date(m.SubscriptionEndDate), req.Months)
	}
	m.Status = m.StatusAt(now)

	payment := models.Payment{
		MemberID:    m.ID,
		Amount:      amount,
		PaymentDate: s.now(),
		Note:        fmt.Sprintf("renewal: %d month(s)", req.Months),
	}
	renewed, saved, err := s.repo.RenewMembership(ctx, *m, payment)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership renewed",
		slog.String("id", id.String()),
		slog.Int("months", req.Months),
		slog.Time("end_date", renewed.SubscriptionEndDate),
	)

	s.invalidate(ctx, cache.AnalyticsRevenueKey)
	return renewed, saved, nil
}

// Attendance возвращает историю посещений участника, новые первыми.
func (s *Service) Attendance(ctx context.Context, id uuid.UUID, limit, offset int) ([]models.Attendance, error) {
	const op = "member.Attendance"

	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := s.repo.ReadMember(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListMemberAttendance(ctx, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
