package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const insertPaymentQuery = `INSERT INTO payments (member_id, amount, payment_date, note)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

// CreatePayment сохраняет оплату и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.DB.QueryRowContext(ctx, insertPaymentQuery, p.MemberID, p.Amount, p.PaymentDate, p.Note).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (s *Storage) queryPayments(ctx context.Context, op, query string, args ...any) ([]models.Payment, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.PaymentDate, &p.Note); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPayments возвращает платежи, новые первыми. Если memberID задан, только платежи этого участника.
func (s *Storage) ListPayments(ctx context.Context, memberID *uuid.UUID, limit, offset int) ([]models.Payment, error) {
	const op = "storage.ListPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var member uuid.NullUUID
	if memberID != nil {
		member = uuid.NullUUID{UUID: *memberID, Valid: true}
	}
	query := `SELECT id, member_id, amount::float8, payment_date, note
			  FROM payments
			  WHERE ($1::uuid IS NULL OR member_id = $1::uuid)
			  ORDER BY payment_date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	return s.queryPayments(ctx, op, query, member, limit, offset)
}

// ListAllPayments возвращает все платежи для построения аналитики.
func (s *Storage) ListAllPayments(ctx context.Context) ([]models.Payment, error) {
	const op = "storage.ListAllPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, member_id, amount::float8, payment_date, note
			  FROM payments
			  ORDER BY payment_date, id`
	return s.queryPayments(ctx, op, query)
}

// RemovePayment удаляет платёж.
func (s *Storage) RemovePayment(ctx context.Context, id int64) error {
	const op = "storage.RemovePayment"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
	}
	return nil
}
