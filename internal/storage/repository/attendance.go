package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Источник отметки посещения.
const (
	SourceManual  = "manual"
	SourceScanner = "scanner"
)

func (s *Storage) queryAttendance(ctx context.Context, op, query string, args ...any) ([]models.Attendance, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Attendance, 0)
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.MemberID, &a.MemberName, &a.Date); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAttendanceBetween возвращает посещения в полуинтервале [from, to) вместе с именами участников.
func (s *Storage) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	const op = "storage.ListAttendanceBetween"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT a.id, a.member_id, m.name, a.date
			  FROM attendance a
			  JOIN members m ON m.id = a.member_id
			  WHERE a.date >= $1 AND a.date < $2
			  ORDER BY a.date, a.id`
	return s.queryAttendance(ctx, op, query, from, to)
}

// ListMemberAttendance возвращает последние посещения участника, новые первыми.
func (s *Storage) ListMemberAttendance(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Attendance, error) {
	const op = "storage.ListMemberAttendance"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT a.id, a.member_id, m.name, a.date
			  FROM attendance a
			  JOIN members m ON m.id = a.member_id
			  WHERE a.member_id = $1
			  ORDER BY a.date DESC, a.id DESC
			  LIMIT $2 OFFSET $3`
	return s.queryAttendance(ctx, op, query, memberID, limit, offset)
}

// CreateAttendance добавляет ручную отметку посещения.
// day календарный день посещения в часовом поясе клуба.
func (s *Storage) CreateAttendance(ctx context.Context, memberID uuid.UUID, at, day time.Time) (*models.Attendance, error) {
	const op = "storage.CreateAttendance"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	a := models.Attendance{MemberID: memberID, Date: at}
	err := s.DB.QueryRowContext(ctx, `INSERT INTO attendance (member_id, date, day, source)
			  VALUES ($1, $2, $3::date, $4)
			  RETURNING id`, memberID, at, dateArg(day), SourceManual).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// RecordDailyAttendance отмечает посещение со сканера, если с начала дня dayStart
// у участника ещё нет отметок. Проверка и вставка выполняются одним запросом,
// повторное сканирование в тот же день гасится уникальным индексом.
// Возвращает true, если запись добавлена.
func (s *Storage) RecordDailyAttendance(ctx context.Context, memberID uuid.UUID, at, dayStart time.Time) (bool, error) {
	const op = "storage.RecordDailyAttendance"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `INSERT INTO attendance (member_id, date, day, source)
			  SELECT $1::uuid, $2::timestamptz, $3::date, 'scanner'
			  WHERE NOT EXISTS (
				  SELECT 1 FROM attendance WHERE member_id = $1::uuid AND date >= $4::timestamptz
			  )
			  ON CONFLICT (member_id, day) WHERE source = 'scanner' DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query, memberID, at, dateArg(dayStart), dayStart)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
