package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, req *models.UserCreate) (*models.UserDB, error)
}

// NewRegisterHandler returns an HTTP handler for public user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email are normalized to lowercase and must be unique. The password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param userCreate body models.UserCreate true "User registration request"
// @Success 200 {object} models.UserResponse "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Username and/or email already exist"
// @Failure 422 {object} handlers.ValidationErrorResponse "Validation failure"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
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

		writeJSON(w, http.StatusOK, models.NewUserResponse(user))
	}
}
