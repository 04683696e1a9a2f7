package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

// NewUserCreateHandler returns an HTTP handler for creating users on the
// authenticated path. It shares the registration pipeline but responds
// with 201.
// @Summary Create a user
// @Description Creates a new user account on behalf of an authenticated caller.
// @Tags users
// @Accept json
// @Produce json
// @Param userCreate body models.UserCreate true "User creation request"
// @Success 201 {object} models.UserResponse "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Username and/or email already exist"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 422 {object} handlers.ValidationErrorResponse "Validation failure"
// @Security BearerAuth
// @Router /users [post]
func NewUserCreateHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserCreate

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), &req)
		if err != nil {
			var verrs validation.Errors
			switch {
			case errors.As(err, &verrs):
				writeValidationErrors(w, verrs)
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Username and/or Email already exist")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.NewUserResponse(user))
	}
}
