package update

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

	"github.com/go-chi/chi"
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

func (m *MockService) Update(ctx context.Context, id uuid.UUID, req models.MemberRequest) (*models.Member, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

const body = `{"name":"Ivan Petrov","phoneNumber":"+79990000000","membershipType":"Yearly",
"subscriptionStartDate":"2024-01-01","subscriptionEndDate":"2024-12-31"}`

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := uuid.New()

	tests := []struct {
		name       string
		idParam    string
		body       string
		mockSetup  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "success",
			idParam: id.String(),
			body:    body,
			mockSetup: func(m *MockService) {
				m.On("Update", mock.Anything, id, mock.MatchedBy(func(req models.MemberRequest) bool {
					return req.MembershipType == "Yearly"
				})).Return(&models.Member{ID: id, MembershipType: "Yearly"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"membershipType":"Yearly"`,
		},
		{
			name:       "invalid id",
			idParam:    "abc",
			body:       body,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid member id",
		},
		{
			name:       "validation error",
			idParam:    id.String(),
			body:       `{"name":"Ivan"}`,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field PhoneNumber is a required field",
		},
		{
			name:    "not found",
			idParam: id.String(),
			body:    body,
			mockSetup: func(m *MockService) {
				m.On("Update", mock.Anything, id, mock.Anything).
					Return(nil, fmt.Errorf("member.Update: %w", repository.ErrMemberNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "member not found",
		},
		{
			name:    "period error",
			idParam: id.String(),
			body:    body,
			mockSetup: func(m *MockService) {
				m.On("Update", mock.Anything, id, mock.Anything).
					Return(nil, fmt.Errorf("member.Update: %w", member.ErrInvalidPeriod))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   member.ErrInvalidPeriod.Error(),
		},
		{
			name:    "fingerprint taken",
			idParam: id.String(),
			body:    body,
			mockSetup: func(m *MockService) {
				m.On("Update", mock.Anything, id, mock.Anything).
					Return(nil, fmt.Errorf("member.Update: %w", repository.ErrFingerprintTaken))
			},
			wantStatus: http.StatusConflict,
			wantBody:   "already registered",
		},
		{
			name:    "service error",
			idParam: id.String(),
			body:    body,
			mockSetup: func(m *MockService) {
				m.On("Update", mock.Anything, id, mock.Anything).Return(nil, errors.New("db down"))
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

			req := httptest.NewRequest(http.MethodPut, "/api/members/"+tt.idParam, strings.NewReader(tt.body))
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
