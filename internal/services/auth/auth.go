// Package auth отвечает за учётные записи сотрудников: вход, выдачу и проверку JWT
// и создание администратора при первом запуске.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/password"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// ErrInvalidCredentials неверный логин или пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает хранилище сотрудников.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (uuid.UUID, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service выполняет аутентификацию сотрудников.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создаёт Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{users: users, jwtMaker: jwtMaker, log: log}
}

// Login проверяет пароль и возвращает JWT и роль сотрудника.
// Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, string, error) {
	const op = "auth.Login"

	user, err := s.users.FindUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID.String(), user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, user.Role, nil
}

// Register создаёт учётную запись сотрудника.
func (s *Service) Register(ctx context.Context, username, rawPassword, role string) (uuid.UUID, error) {
	const op = "auth.Register"

	if role == "" {
		role = models.RoleStaff
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("username", username), slog.String("role", role))
	return id, nil
}

// EnsureAdmin создаёт администратора, если его ещё нет. Пустой пароль отключает создание.
func (s *Service) EnsureAdmin(ctx context.Context, username, rawPassword string) error {
	const op = "auth.EnsureAdmin"

	if rawPassword == "" {
		s.log.Warn("admin password is not configured, skipping admin bootstrap")
		return nil
	}
	_, err := s.users.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.Register(ctx, username, rawPassword, models.RoleAdmin)
	if errors.Is(err, repository.ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет JWT и возвращает данные сотрудника из него.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.User{
		ID:       id,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
