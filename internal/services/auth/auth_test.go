package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/password"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/auth"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *UserRepoMock) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID, username, role string) (string, error) {
	args := m.Called(userID, username, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func mustHash(t *testing.T, raw string) string {
	t.Helper()
	h, err := password.GetHash(raw)
	require.NoError(t, err)
	return h
}

func TestService_Login(t *testing.T) {
	id := uuid.New()
	hash := mustHash(t, "secret123")

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantRole   string
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "secret123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("FindUserByUsername", mock.Anything, "admin").
					Return(&models.User{ID: id, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin}, nil).Once()
				j.On("GenerateToken", id.String(), "admin", models.RoleAdmin).Return("token", nil).Once()
			},
			wantToken: "token",
			wantRole:  models.RoleAdmin,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong-pass",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("FindUserByUsername", mock.Anything, "admin").
					Return(&models.User{ID: id, Username: "admin", PasswordHash: hash}, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret123",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, j := new(UserRepoMock), new(JwtMakerMock)
			tt.setupMocks(r, j)
			s := auth.New(r, j, sl.Discard())

			token, role, err := s.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantRole, role)
			r.AssertExpectations(t)
			j.AssertExpectations(t)
		})
	}
}

func TestService_Register(t *testing.T) {
	id := uuid.New()

	t.Run("default role is staff", func(t *testing.T) {
		r := new(UserRepoMock)
		r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Username == "anna" && u.Role == models.RoleStaff &&
				password.CompareHash(u.PasswordHash, "secret123") == nil
		})).Return(id, nil).Once()

		got, err := auth.New(r, new(JwtMakerMock), sl.Discard()).Register(context.Background(), "anna", "secret123", "")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := auth.New(new(UserRepoMock), new(JwtMakerMock), sl.Discard()).
			Register(context.Background(), "anna", "123", "")
		require.ErrorIs(t, err, password.ErrTooShort)
	})

	t.Run("duplicate username", func(t *testing.T) {
		r := new(UserRepoMock)
		r.On("CreateUser", mock.Anything, mock.Anything).Return(uuid.Nil, repository.ErrUserExists).Once()

		_, err := auth.New(r, new(JwtMakerMock), sl.Discard()).Register(context.Background(), "anna", "secret123", "")
		require.ErrorIs(t, err, repository.ErrUserExists)
	})
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		r := new(UserRepoMock)
		r.On("FindUserByUsername", mock.Anything, "admin").Return(nil, repository.ErrUserNotFound).Once()
		r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Role == models.RoleAdmin
		})).Return(uuid.New(), nil).Once()

		require.NoError(t, auth.New(r, new(JwtMakerMock), sl.Discard()).EnsureAdmin(context.Background(), "admin", "secret123"))
		r.AssertExpectations(t)
	})

	t.Run("admin already exists", func(t *testing.T) {
		r := new(UserRepoMock)
		r.On("FindUserByUsername", mock.Anything, "admin").Return(&models.User{Username: "admin"}, nil).Once()

		require.NoError(t, auth.New(r, new(JwtMakerMock), sl.Discard()).EnsureAdmin(context.Background(), "admin", "secret123"))
		r.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("no password configured", func(t *testing.T) {
		r := new(UserRepoMock)

		require.NoError(t, auth.New(r, new(JwtMakerMock), sl.Discard()).EnsureAdmin(context.Background(), "admin", ""))
		r.AssertNotCalled(t, "FindUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		r := new(UserRepoMock)
		r.On("FindUserByUsername", mock.Anything, "admin").Return(nil, errors.New("db down")).Once()

		require.Error(t, auth.New(r, new(JwtMakerMock), sl.Discard()).EnsureAdmin(context.Background(), "admin", "secret123"))
	})
}

func TestService_ValidateToken(t *testing.T) {
	id := uuid.New()
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken(id.String(), "anna", models.RoleStaff)
	require.NoError(t, err)

	s := auth.New(new(UserRepoMock), maker, sl.Discard())

	user, err := s.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "anna", user.Username)
	assert.Equal(t, models.RoleStaff, user.Role)

	_, err = s.ValidateToken(context.Background(), token+"x")
	require.Error(t, err)
}
