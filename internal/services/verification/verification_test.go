package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindMemberByFingerprint(ctx context.Context, fingerprintID int64) (*models.Member, error) {
	args := m.Called(ctx, fingerprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *RepoMock) UpdateMemberStatus(ctx context.Context, id uuid.UUID, status models.MemberStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RepoMock) RecordDailyAttendance(ctx context.Context, memberID uuid.UUID, at, dayStart time.Time) (bool, error) {
	args := m.Called(ctx, memberID, at, dayStart)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) ListFingerprints(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, event models.Event) error {
	return m.Called(ctx, event).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

type RecorderMock struct {
	results []string
}

func (r *RecorderMock) CheckIn(result string) {
	r.results = append(r.results, result)
}

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	repo      *RepoMock
	cache     *CacheMock
	publisher *PublisherMock
	recorder  *RecorderMock
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(RepoMock),
		cache:     new(CacheMock),
		publisher: new(PublisherMock),
		recorder:  &RecorderMock{},
	}
	f.service = New(f.repo, f.cache, f.publisher, f.recorder, time.UTC, time.Minute, sl.Discard())
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func activeMember(fp int64) *models.Member {
	return &models.Member{
		ID:                    uuid.New(),
		Name:                  "Ivan",
		PhoneNumber:           "+7999",
		MembershipType:        "Monthly",
		FingerprintID:         &fp,
		SubscriptionStartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SubscriptionEndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:                models.StatusActive,
	}
}

func TestService_Verify_InvalidFingerprint(t *testing.T) {
	for _, fp := range []int64{0, -5} {
		f := newFixture()

		_, err := f.service.Verify(context.Background(), fp)
		require.ErrorIs(t, err, ErrInvalidFingerprint)
		assert.Equal(t, []string{metrics.CheckInInvalid}, f.recorder.results)
		f.repo.AssertNotCalled(t, "FindMemberByFingerprint", mock.Anything, mock.Anything)
	}
}

func TestService_Verify_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("FindMemberByFingerprint", mock.Anything, int64(99)).Return(nil, repository.ErrMemberNotFound).Once()

	_, err := f.service.Verify(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.Equal(t, []string{metrics.CheckInNotFound}, f.recorder.results)
}

func TestService_Verify_Granted(t *testing.T) {
	tests := []struct {
		name           string
		created        bool
		wantCheckedIn  bool
		publishFailure error
	}{
		{name: "первый проход за день", created: true, wantCheckedIn: false},
		{name: "повторный проход не создаёт посещение", created: false, wantCheckedIn: true},
		{name: "ошибка брокера не мешает проходу", created: true, publishFailure: errors.New("broker down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			m := activeMember(7)
			dayStart := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

			f.repo.On("FindMemberByFingerprint", mock.Anything, int64(7)).Return(m, nil).Once()
			f.repo.On("RecordDailyAttendance", mock.Anything, m.ID, fixedNow, dayStart).Return(tt.created, nil).Once()
			f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
				return e.Type == models.EventCheckInGranted && e.MemberID == m.ID
			})).Return(tt.publishFailure).Once()

			got, err := f.service.Verify(context.Background(), 7)
			require.NoError(t, err)
			assert.True(t, got.Access)
			assert.Equal(t, MessageGranted, got.Message)
			assert.Equal(t, "Ivan", got.Member.Name)
			assert.Equal(t, tt.wantCheckedIn, got.CheckedInBefore)
			assert.Equal(t, []string{metrics.CheckInGranted}, f.recorder.results)
			f.repo.AssertNotCalled(t, "UpdateMemberStatus", mock.Anything, mock.Anything, mock.Anything)
			f.repo.AssertExpectations(t)
			f.publisher.AssertExpectations(t)
		})
	}
}

func TestService_Verify_Denied(t *testing.T) {
	tests := []struct {
		name        string
		start       time.Time
		end         time.Time
		stored      models.MemberStatus
		wantStatus  models.MemberStatus
		wantPersist bool
	}{
		{
			name:        "абонемент истёк и статус сохраняется",
			start:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			end:         time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			stored:      models.StatusActive,
			wantStatus:  models.StatusExpired,
			wantPersist: true,
		},
		{
			name:       "абонемент ещё не начался",
			start:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			end:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			stored:     models.StatusPending,
			wantStatus: models.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			m := activeMember(3)
			m.SubscriptionStartDate, m.SubscriptionEndDate, m.Status = tt.start, tt.end, tt.stored

			f.repo.On("FindMemberByFingerprint", mock.Anything, int64(3)).Return(m, nil).Once()
			if tt.wantPersist {
				f.repo.On("UpdateMemberStatus", mock.Anything, m.ID, tt.wantStatus).Return(nil).Once()
			}
			f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
				return e.Type == models.EventCheckInDenied && e.Status == tt.wantStatus
			})).Return(nil).Once()

			got, err := f.service.Verify(context.Background(), 3)
			require.NoError(t, err)
			assert.False(t, got.Access)
			assert.Equal(t, "Access denied. Member is "+string(tt.wantStatus), got.Message)
			assert.Equal(t, tt.wantStatus, got.Member.Status)
			assert.Equal(t, []string{metrics.CheckInDenied}, f.recorder.results)
			f.repo.AssertNotCalled(t, "RecordDailyAttendance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.repo.AssertExpectations(t)
		})
	}
}

func TestService_Verify_StatusPersistFailure(t *testing.T) {
	f := newFixture()
	m := activeMember(3)
	m.SubscriptionEndDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	f.repo.On("FindMemberByFingerprint", mock.Anything, int64(3)).Return(m, nil).Once()
	f.repo.On("UpdateMemberStatus", mock.Anything, m.ID, models.StatusExpired).Return(errors.New("db down")).Once()

	_, err := f.service.Verify(context.Background(), 3)
	require.Error(t, err)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_ListFingerprints(t *testing.T) {
	t.Run("из базы с записью в кеш", func(t *testing.T) {
		f := newFixture()
		f.cache.On("Get", mock.Anything, cache.FingerprintsKey, mock.Anything).Return(false, nil).Once()
		f.repo.On("ListFingerprints", mock.Anything).Return([]int64{1, 2, 5}, nil).Once()
		f.cache.On("Set", mock.Anything, cache.FingerprintsKey, []int64{1, 2, 5}, time.Minute).Return(nil).Once()

		got, err := f.service.ListFingerprints(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 5}, got)
		f.cache.AssertExpectations(t)
	})

	t.Run("из кеша", func(t *testing.T) {
		f := newFixture()
		f.cache.On("Get", mock.Anything, cache.FingerprintsKey, mock.Anything).
			Run(func(args mock.Arguments) {
				*(args.Get(2).(*[]int64)) = []int64{4}
			}).Return(true, nil).Once()

		got, err := f.service.ListFingerprints(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{4}, got)
		f.repo.AssertNotCalled(t, "ListFingerprints", mock.Anything)
	})

	t.Run("нет отпечатков", func(t *testing.T) {
		f := newFixture()
		f.cache.On("Get", mock.Anything, cache.FingerprintsKey, mock.Anything).Return(false, errors.New("redis down")).Once()
		f.repo.On("ListFingerprints", mock.Anything).Return([]int64{}, nil).Once()
		f.cache.On("Set", mock.Anything, cache.FingerprintsKey, mock.Anything, time.Minute).Return(nil).Once()

		_, err := f.service.ListFingerprints(context.Background())
		require.ErrorIs(t, err, ErrNoFingerprints)
	})
}
