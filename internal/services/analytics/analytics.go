// Package analytics считает выручку клуба по месяцам и годам для дашборда.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/lib/month"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Repository источник платежей.
type Repository interface {
	ListAllPayments(ctx context.Context) ([]models.Payment, error)
}

// Cache хранит готовый снимок аналитики.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт аналитику выручки.
type Service struct {
	repo     Repository
	cache    Cache
	log      *slog.Logger
	loc      *time.Location
	cacheTTL time.Duration
}

// New создаёт Service. Месяц платежа определяется в часовом поясе loc.
func New(repo Repository, cache Cache, loc *time.Location, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		log:      log,
		loc:      loc,
		cacheTTL: cacheTTL,
	}
}

// Revenue возвращает выручку по месяцам и годам. Снимок берётся из кеша, если он там есть.
func (s *Service) Revenue(ctx context.Context) (*models.Analytics, error) {
	const op = "analytics.Revenue"

	var cached models.Analytics
	found, err := s.cache.Get(ctx, cache.AnalyticsRevenueKey, &cached)
	if err != nil {
		s.log.Warn("failed to read analytics from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	payments, err := s.repo.ListAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := Aggregate(payments, s.loc)

	if err := s.cache.Set(ctx, cache.AnalyticsRevenueKey, result, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache analytics", sl.Err(err))
	}
	return &result, nil
}

type bucket struct {
	revenue float64
	members map[uuid.UUID]struct{}
}

func (b *bucket) add(p models.Payment) {
	b.revenue += p.Amount
	b.members[p.MemberID] = struct{}{}
}

type monthKey struct {
	year  int
	month time.Month
}

// Aggregate группирует платежи по (год, месяц) и по году: сумма платежей и число
// разных участников. Месяцы идут в хронологическом порядке, годы по возрастанию.
// Без платежей оба списка пустые, но не nil.
func Aggregate(payments []models.Payment, loc *time.Location) models.Analytics {
	monthly := make(map[monthKey]*bucket)
	yearly := make(map[int]*bucket)

	for _, p := range payments {
		at := p.PaymentDate.In(loc)
		mk := monthKey{year: at.Year(), month: at.Month()}

		mb, ok := monthly[mk]
		if !ok {
			mb = &bucket{members: make(map[uuid.UUID]struct{})}
			monthly[mk] = mb
		}
		mb.add(p)

		yb, ok := yearly[mk.year]
		if !ok {
			yb = &bucket{members: make(map[uuid.UUID]struct{})}
			yearly[mk.year] = yb
		}
		yb.add(p)
	}

	monthKeys := make([]monthKey, 0, len(monthly))
	for k := range monthly {
		monthKeys = append(monthKeys, k)
	}
	sort.Slice(monthKeys, func(i, j int) bool {
		if monthKeys[i].year != monthKeys[j].year {
			return monthKeys[i].year < monthKeys[j].year
		}
		return monthKeys[i].month < monthKeys[j].month
	})

	years := make([]int, 0, len(yearly))
	for y := range yearly {
		years = append(years, y)
	}
	sort.Ints(years)

	result := models.Analytics{
		MonthlyRevenueData: make([]models.MonthlyRevenue, 0, len(monthKeys)),
		YearlyData:         make([]models.YearlyRevenue, 0, len(years)),
	}
	for _, k := range monthKeys {
		b := monthly[k]
		result.MonthlyRevenueData = append(result.MonthlyRevenueData, models.MonthlyRevenue{
			Month:   month.ShortName(k.month),
			Year:    strconv.Itoa(k.year),
			Revenue: roundCents(b.revenue),
			Members: len(b.members),
		})
	}
	for _, y := range years {
		b := yearly[y]
		result.YearlyData = append(result.YearlyData, models.YearlyRevenue{
			Year:    strconv.Itoa(y),
			Revenue: roundCents(b.revenue),
			Members: len(b.members),
		})
	}
	return result
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
