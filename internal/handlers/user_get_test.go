package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

// withURLParam attaches a chi route parameter to the request so that
// chi.URLParam resolves it without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUserGetHandler(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name         string
		paramID      string
		mockSetup    func(svc *MockUserGetter)
		expectedCode int
	}{
		{
			name:    "success",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserGetter) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(user, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed id",
			paramID:      "not-a-uuid",
			mockSetup:    func(svc *MockUserGetter) {},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "user not found",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserGetter) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "internal error",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserGetter) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUserGetter(ctrl)
			tt.mockSetup(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.paramID, nil)
			req = withURLParam(req, "id", tt.paramID)
			w := httptest.NewRecorder()

			handler := NewUserGetHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			switch tt.expectedCode {
			case http.StatusOK:
				var resp models.UserResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.ID)
				assert.Equal(t, "alice", resp.Username)
			case http.StatusNotFound:
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "User not found", resp.Error)
			}
		})
	}
}
