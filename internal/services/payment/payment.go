// Package payment ведёт учёт оплат абонементов.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

var (
	// ErrInvalidMemberID идентификатор участника не является UUID.
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidDate дата оплаты не разобрана.
	ErrInvalidDate = errors.New("invalid payment date")
	// ErrInvalidAmount сумма оплаты меньше копейки или не помещается в колонку.
	ErrInvalidAmount = errors.New("amount must be between 0.01 and 9999999999.99")
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Repository описывает хранилище платежей.
type Repository interface {
	CreatePayment(ctx context.Context, p models.Payment) (int64, error)
	ListPayments(ctx context.Context, memberID *uuid.UUID, limit, offset int) ([]models.Payment, error)
	RemovePayment(ctx context.Context, id int64) error
}

// Cache сбрасывает снимок аналитики после изменения платежей.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Service управляет платежами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	loc   *time.Location
	now   func() time.Time
}

// New создаёт Service.
func New(repo Repository, cache Cache, loc *time.Location, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log, loc: loc, now: time.Now}
}

func (s *Service) invalidateAnalytics(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.AnalyticsRevenueKey); err != nil {
		s.log.Warn("failed to invalidate analytics cache", sl.Err(err))
	}
}

// Create записывает оплату. Без даты оплата считается сделанной сейчас.
func (s *Service) Create(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	const op = "payment.Create"

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMemberID)
	}
	amount, ok := models.NormalizeAmount(req.Amount)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}
	paidAt := s.now()
	if req.PaymentDate != "" {
		paidAt, err = time.ParseInLocation(models.DateLayout, req.PaymentDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
		}
	}

	p := models.Payment{
		MemberID:    memberID,
		Amount:      amount,
		PaymentDate: paidAt,
		Note:        req.Note,
	}
	p.ID, err = s.repo.CreatePayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment recorded", slog.Int64("id", p.ID), slog.String("member_id", memberID.String()))

	s.invalidateAnalytics(ctx)
	return &p, nil
}

// List возвращает платежи, новые первыми. Пустой memberID означает все платежи.
func (s *Service) List(ctx context.Context, memberID string, limit, offset int) ([]models.Payment, error) {
	const op = "payment.List"

	var filter *uuid.UUID
	if memberID != "" {
		id, err := uuid.Parse(memberID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidMemberID)
		}
		filter = &id
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.ListPayments(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Remove удаляет платёж.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "payment.Remove"

	if err := s.repo.RemovePayment(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment removed", slog.Int64("id", id))

	s.invalidateAnalytics(ctx)
	return nil
}
