package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

// UserUpdater defines the interface that the user update service must implement.
type UserUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, req *models.UserUpdate) (*models.UserDB, error)
}

// NewUserUpdateHandler returns an HTTP handler for partially updating a user.
// @Summary Update a user
// @Description Applies a partial update. Only supplied fields change; each supplied field is validated by the same rules as on creation.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param userUpdate body models.UserUpdate true "Partial user update"
// @Success 200 {object} models.UserResponse "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Username and/or email already exist"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 422 {object} handlers.ValidationErrorResponse "Validation failure"
// @Security BearerAuth
// @Router /users/{id} [put]
func NewUserUpdateHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		var req models.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Update(r.Context(), userID, &req)
		if err != nil {
			var verrs validation.Errors
			switch {
			case errors.As(err, &verrs):
				writeValidationErrors(w, verrs)
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Username and/or Email already exist")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, models.NewUserResponse(user))
	}
}
