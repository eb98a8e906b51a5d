package visits

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Attendance(ctx context.Context, id uuid.UUID, limit, offset int) ([]models.Attendance, error) {
	args := m.Called(ctx, id, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

func TestVisitsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := uuid.New()
	at := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		idParam    string
		query      string
		mockSetup  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "history with paging",
			idParam: id.String(),
			query:   "?limit=5&offset=10",
			mockSetup: func(m *MockService) {
				m.On("Attendance", mock.Anything, id, 5, 10).
					Return([]models.Attendance{{ID: 1, MemberID: id, Date: at}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"date":"2024-06-15T09:00:00Z"`,
		},
		{
			name:    "empty history",
			idParam: id.String(),
			mockSetup: func(m *MockService) {
				m.On("Attendance", mock.Anything, id, 0, 0).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"data":[]`,
		},
		{
			name:       "invalid id",
			idParam:    "7",
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid member id",
		},
		{
			name:    "service error",
			idParam: id.String(),
			mockSetup: func(m *MockService) {
				m.On("Attendance", mock.Anything, id, 0, 0).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/members/"+tt.idParam+"/attendance"+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			mockService.AssertExpectations(t)
		})
	}
}
