package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

// UserDeleter defines the interface that the user deletion service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID) error
}

// NewUserDeleteHandler returns an HTTP handler for deleting a user.
// @Summary Delete a user
// @Description Hard-deletes the user record. A second delete on the same ID returns 404.
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "User deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func NewUserDeleteHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
