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

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.TokenResponse "Bearer token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Incorrect username or password"
// @Failure 422 {object} handlers.ValidationErrorResponse "Missing credentials"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Credentials are checked for presence only; correctness is
		// established by the hash comparison downstream.
		var verrs validation.Errors
		if req.Username == "" {
			verrs = append(verrs, &validation.FieldError{
				Field: "username", Kind: validation.KindInvalidField, Message: "username is required",
			})
		}
		if req.Password == "" {
			verrs = append(verrs, &validation.FieldError{
				Field: "password", Kind: validation.KindInvalidField, Message: "password is required",
			})
		}
		if len(verrs) > 0 {
			writeValidationErrors(w, verrs)
			return
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
