package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const memberColumns = `id, name, phone_number, membership_type, fingerprint_id,
	subscription_start_date, subscription_end_date, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var fp sql.NullInt64
	if err := row.Scan(&m.ID, &m.Name, &m.PhoneNumber, &m.MembershipType, &fp,
		&m.SubscriptionStartDate, &m.SubscriptionEndDate, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if fp.Valid {
		v := fp.Int64
		m.FingerprintID = &v
	}
	return &m, nil
}

func nullFingerprint(fp *int64) sql.NullInt64 {
	if fp == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *fp, Valid: true}
}

func dateArg(t time.Time) string {
	return t.Format(models.DateLayout)
}

// CreateMember сохраняет нового участника и возвращает его с присвоенным ID.
func (s *Storage) CreateMember(ctx context.Context, m models.Member) (*models.Member, error) {
	const op = "storage.CreateMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO members (id, name, phone_number, membership_type, fingerprint_id,
				subscription_start_date, subscription_end_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + memberColumns
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := s.DB.QueryRowContext(ctx, query, m.ID, m.Name, m.PhoneNumber, m.MembershipType,
		nullFingerprint(m.FingerprintID), dateArg(m.SubscriptionStartDate), dateArg(m.SubscriptionEndDate), m.Status)
	created, err := scanMember(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrFingerprintTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadMember возвращает участника по ID.
func (s *Storage) ReadMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	const op = "storage.ReadMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// FindMemberByFingerprint возвращает участника по номеру отпечатка на сканере.
func (s *Storage) FindMemberByFingerprint(ctx context.Context, fingerprintID int64) (*models.Member, error) {
	const op = "storage.FindMemberByFingerprint"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE fingerprint_id = $1`, fingerprintID)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// UpdateMember перезаписывает данные участника.
func (s *Storage) UpdateMember(ctx context.Context, m models.Member) (*models.Member, error) {
	const op = "storage.UpdateMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE members
			  SET name = $1, phone_number = $2, membership_type = $3, fingerprint_id = $4,
				  subscription_start_date = $5, subscription_end_date = $6, status = $7, updated_at = now()
			  WHERE id = $8
			  RETURNING ` + memberColumns
	row := s.DB.QueryRowContext(ctx, query, m.Name, m.PhoneNumber, m.MembershipType, nullFingerprint(m.FingerprintID),
		dateArg(m.SubscriptionStartDate), dateArg(m.SubscriptionEndDate), m.Status, m.ID)
	updated, err := scanMember(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	case isUniqueViolation(err):
		return nil, fmt.Errorf("%s: %w", op, ErrFingerprintTaken)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// UpdateMemberStatus сохраняет пересчитанный статус абонемента.
func (s *Storage) UpdateMemberStatus(ctx context.Context, id uuid.UUID, status models.MemberStatus) error {
	const op = "storage.UpdateMemberStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE members SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	return nil
}

// RemoveMember удаляет участника вместе с его посещениями и платежами.
func (s *Storage) RemoveMember(ctx context.Context, id uuid.UUID) error {
	const op = "storage.RemoveMember"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	return nil
}

// ListMembers возвращает участников с фильтром по статусу, поиском по имени или телефону и пагинацией.
func (s *Storage) ListMembers(ctx context.Context, filter models.MemberFilter) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var status sql.NullString
	if filter.Status != nil {
		status = sql.NullString{String: string(*filter.Status), Valid: true}
	}
	query := `SELECT ` + memberColumns + `
			  FROM members
			  WHERE ($1::text IS NULL OR status = $1)
				AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR phone_number ILIKE '%' || $2 || '%')
			  ORDER BY name, id
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFingerprints возвращает все зарегистрированные номера отпечатков по возрастанию.
func (s *Storage) ListFingerprints(ctx context.Context) ([]int64, error) {
	const op = "storage.ListFingerprints"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT fingerprint_id FROM members WHERE fingerprint_id IS NOT NULL ORDER BY fingerprint_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]int64, 0)
	for rows.Next() {
		var fp int64
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) queryExpiring(ctx context.Context, op, query string, args ...any) ([]models.ExpiringMember, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.ExpiringMember, 0)
	for rows.Next() {
		var m models.ExpiringMember
		if err := rows.Scan(&m.ID, &m.Name, &m.PhoneNumber, &m.SubscriptionEndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ExpireMembers переводит в Expired всех, чей абонемент закончился до today, и возвращает их.
func (s *Storage) ExpireMembers(ctx context.Context, today time.Time) ([]models.ExpiringMember, error) {
	const op = "storage.ExpireMembers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE members
			  SET status = 'Expired', updated_at = now()
			  WHERE status <> 'Expired' AND subscription_end_date < $1::date
			  RETURNING id, name, phone_number, subscription_end_date`
	return s.queryExpiring(ctx, op, query, dateArg(today))
}

// ActivateMembers переводит в Active абонементы, период которых начался к today.
func (s *Storage) ActivateMembers(ctx context.Context, today time.Time) (int64, error) {
	const op = "storage.ActivateMembers"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE members
			  SET status = 'Active', updated_at = now()
			  WHERE status = 'Pending'
				AND subscription_start_date <= $1::date
				AND subscription_end_date >= $1::date`, dateArg(today))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// FindMembersExpiringBetween возвращает действующих участников, чей абонемент заканчивается в [from, to].
func (s *Storage) FindMembersExpiringBetween(ctx context.Context, from, to time.Time) ([]models.ExpiringMember, error) {
	const op = "storage.FindMembersExpiringBetween"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, name, phone_number, subscription_end_date
			  FROM members
			  WHERE status = 'Active'
				AND subscription_end_date BETWEEN $1::date AND $2::date
			  ORDER BY subscription_end_date, name`
	return s.queryExpiring(ctx, op, query, dateArg(from), dateArg(to))
}

// RenewMembership в одной транзакции продлевает абонемент и записывает оплату.
func (s *Storage) RenewMembership(ctx context.Context, m models.Member, payment models.Payment) (*models.Member, *models.Payment, error) {
	const op = "storage.RenewMembership"
	if err := checkCtx(ctx, op); err != nil {
		return nil, nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `UPDATE members
			  SET subscription_start_date = $1, subscription_end_date = $2, status = $3, updated_at = now()
			  WHERE id = $4
			  RETURNING `+memberColumns,
		dateArg(m.SubscriptionStartDate), dateArg(m.SubscriptionEndDate), m.Status, m.ID)
	updated, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	payment.MemberID = m.ID
	if err := tx.QueryRowContext(ctx, insertPaymentQuery,
		payment.MemberID, payment.Amount, payment.PaymentDate, payment.Note).Scan(&payment.ID); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, &payment, nil
}
