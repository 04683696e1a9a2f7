package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

func TestUserDeleteHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		paramID      string
		mockSetup    func(svc *MockUserDeleter)
		expectedCode int
	}{
		{
			name:    "success",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserDeleter) {
				svc.EXPECT().Delete(gomock.Any(), userID).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "malformed id",
			paramID:      "not-a-uuid",
			mockSetup:    func(svc *MockUserDeleter) {},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "user not found",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserDeleter) {
				svc.EXPECT().Delete(gomock.Any(), userID).Return(services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "internal error",
			paramID: userID.String(),
			mockSetup: func(svc *MockUserDeleter) {
				svc.EXPECT().Delete(gomock.Any(), userID).Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUserDeleter(ctrl)
			tt.mockSetup(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/users/"+tt.paramID, nil)
			req = withURLParam(req, "id", tt.paramID)
			w := httptest.NewRecorder()

			handler := NewUserDeleteHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusNoContent {
				assert.Empty(t, w.Body.Bytes())
			}
		})
	}
}
