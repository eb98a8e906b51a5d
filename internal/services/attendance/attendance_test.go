package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

func (m *RepoMock) CreateAttendance(ctx context.Context, memberID uuid.UUID, at, day time.Time) (*models.Attendance, error) {
	args := m.Called(ctx, memberID, at, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func TestService_ListByDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name       string
		date       string
		setupMocks func(r *RepoMock)
		wantLen    int
		wantErr    error
	}{
		{
			name:       "пустая дата",
			date:       "",
			setupMocks: func(_ *RepoMock) {},
			wantLen:    0,
		},
		{
			name: "день в часовом поясе клуба",
			date: "2024-06-15",
			setupMocks: func(r *RepoMock) {
				from := time.Date(2024, 6, 15, 0, 0, 0, 0, loc)
				to := time.Date(2024, 6, 16, 0, 0, 0, 0, loc)
				r.On("ListAttendanceBetween", mock.Anything, from, to).
					Return([]models.Attendance{{ID: 1}, {ID: 2}}, nil).Once()
			},
			wantLen: 2,
		},
		{
			name: "дата в формате RFC3339",
			date: "2024-06-15T22:30:00Z",
			setupMocks: func(r *RepoMock) {
				// 01:30 16 июня по UTC+3
				from := time.Date(2024, 6, 16, 0, 0, 0, 0, loc)
				r.On("ListAttendanceBetween", mock.Anything, from, from.AddDate(0, 0, 1)).
					Return([]models.Attendance{}, nil).Once()
			},
			wantLen: 0,
		},
		{
			name:       "некорректная дата",
			date:       "15.06.2024",
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			tt.setupMocks(r)
			s := New(r, loc, sl.Discard())

			got, err := s.ListByDate(context.Background(), tt.date)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			r.AssertExpectations(t)
		})
	}
}

func TestService_Record(t *testing.T) {
	memberID := uuid.New()

	t.Run("успешная отметка", func(t *testing.T) {
		r := new(RepoMock)
		at := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		r.On("CreateAttendance", mock.Anything, memberID, at, at).
			Return(&models.Attendance{ID: 3, MemberID: memberID, Date: at}, nil).Once()

		got, err := New(r, time.UTC, sl.Discard()).Record(context.Background(),
			models.AttendanceRequest{MemberID: memberID.String(), Date: "2024-06-15"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		r.AssertExpectations(t)
	})

	t.Run("участник не найден", func(t *testing.T) {
		r := new(RepoMock)
		r.On("CreateAttendance", mock.Anything, memberID, mock.Anything, mock.Anything).
			Return(nil, repository.ErrMemberNotFound).Once()

		_, err := New(r, time.UTC, sl.Discard()).Record(context.Background(),
			models.AttendanceRequest{MemberID: memberID.String(), Date: "2024-06-15"})
		require.ErrorIs(t, err, repository.ErrMemberNotFound)
	})

	t.Run("некорректный ID", func(t *testing.T) {
		_, err := New(new(RepoMock), time.UTC, sl.Discard()).Record(context.Background(),
			models.AttendanceRequest{MemberID: "abc", Date: "2024-06-15"})
		require.ErrorIs(t, err, ErrInvalidMemberID)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		_, err := New(new(RepoMock), time.UTC, sl.Discard()).Record(context.Background(),
			models.AttendanceRequest{MemberID: memberID.String(), Date: "yesterday"})
		require.ErrorIs(t, err, ErrInvalidDate)
	})
}
