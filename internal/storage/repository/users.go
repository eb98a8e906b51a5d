package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// CreateUser регистрирует сотрудника.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return uuid.Nil, err
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}
	var id uuid.UUID
	err := s.DB.QueryRowContext(ctx, `INSERT INTO users (id, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`, user.ID, user.Username, user.PasswordHash, user.Role).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// FindUserByUsername ищет сотрудника по логину.
func (s *Storage) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.FindUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var u models.User
	err := s.DB.QueryRowContext(ctx, `SELECT id, username, password_hash, role FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
