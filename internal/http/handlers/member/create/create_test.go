package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/member"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.MemberRequest) (*models.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

const validBody = `{"name":"Ivan Petrov","phoneNumber":"+79990000000","membershipType":"Monthly",
"fingerprintId":12,"subscriptionStartDate":"2024-06-01","subscriptionEndDate":"2024-07-01"}`

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "member created",
			body: validBody,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req models.MemberRequest) bool {
					return req.Name == "Ivan Petrov" && req.FingerprintID != nil && *req.FingerprintID == 12
				})).Return(&models.Member{ID: id, Name: "Ivan Petrov", Status: models.StatusActive}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   id.String(),
		},
		{
			name:       "invalid json",
			body:       `{"name":`,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
		{
			name:       "missing name and bad date format",
			body:       `{"phoneNumber":"1","membershipType":"Monthly","subscriptionStartDate":"01.06.2024","subscriptionEndDate":"2024-07-01"}`,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field Name is a required field",
		},
		{
			name:       "zero fingerprint rejected",
			body:       strings.Replace(validBody, `"fingerprintId":12`, `"fingerprintId":0`, 1),
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field FingerprintID must be greater than 0",
		},
		{
			name: "end before start",
			body: validBody,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("member.Create: %w", member.ErrInvalidPeriod))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   member.ErrInvalidPeriod.Error(),
		},
		{
			name: "fingerprint taken",
			body: validBody,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("member.Create: %w", repository.ErrFingerprintTaken))
			},
			wantStatus: http.StatusConflict,
			wantBody:   "fingerprint id is already registered",
		},
		{
			name: "storage failure",
			body: validBody,
			mockSetup: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
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

			req := httptest.NewRequest(http.MethodPost, "/api/members", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			mockService.AssertExpectations(t)
		})
	}
}
