package fingerprintlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-membership/internal/services/verification"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListFingerprints(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func TestFingerprintListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		mockSetup  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "sorted list",
			mockSetup: func(m *MockService) {
				m.On("ListFingerprints", mock.Anything).Return([]int64{3, 7}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"fingerprintId":3},{"fingerprintId":7}]`,
		},
		{
			name: "nobody registered",
			mockSetup: func(m *MockService) {
				m.On("ListFingerprints", mock.Anything).
					Return(nil, fmt.Errorf("verification.ListFingerprints: %w", verification.ErrNoFingerprints))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "No members with fingerprint IDs found",
		},
		{
			name: "storage failure",
			mockSetup: func(m *MockService) {
				m.On("ListFingerprints", mock.Anything).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/fingerprints/verification", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			mockService.AssertExpectations(t)
		})
	}
}
