// Package attendance отвечает за журнал посещений: выборку за календарный день и ручные отметки.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/lib/month"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

var (
	// ErrInvalidDate дата не разобрана.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidMemberID идентификатор участника не является UUID.
	ErrInvalidMemberID = errors.New("invalid member id")
)

// Repository описывает хранилище посещений.
type Repository interface {
	ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
	CreateAttendance(ctx context.Context, memberID uuid.UUID, at, day time.Time) (*models.Attendance, error)
}

// Service работает с журналом посещений.
type Service struct {
	repo Repository
	log  *slog.Logger
	loc  *time.Location
}

// New создаёт Service. Границы дня считаются в часовом поясе loc.
func New(repo Repository, loc *time.Location, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, loc: loc}
}

// ListByDate возвращает посещения за календарный день date.
// Пустая дата даёт пустой список без обращения к базе.
func (s *Service) ListByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	const op = "attendance.ListByDate"

	if date == "" {
		return []models.Attendance{}, nil
	}
	day, err := month.ParseDate(date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}
	from, to := month.DayRange(day, s.loc)

	list, err := s.repo.ListAttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Record добавляет ручную отметку посещения. Участник должен существовать.
func (s *Service) Record(ctx context.Context, req models.AttendanceRequest) (*models.Attendance, error) {
	const op = "attendance.Record"

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMemberID)
	}
	at, err := month.ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}

	a, err := s.repo.CreateAttendance(ctx, memberID, at, month.StartOfDay(at, s.loc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("attendance recorded", slog.String("member_id", memberID.String()), slog.Int64("id", a.ID))
	return a, nil
}
