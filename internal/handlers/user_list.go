package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

// UserLister defines the interface that the user listing service must implement.
type UserLister interface {
	List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error)
}

// Pagination defaults for the list endpoint.
const (
	defaultSkip  = 0
	defaultLimit = 10
)

// NewUserListHandler returns an HTTP handler for listing users.
// @Summary List users
// @Description Returns one page of users in creation order. A page past the end of the user set is a 400 failure, not an empty list.
// @Tags users
// @Produce json
// @Param skip query int false "Number of users to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.UserListResponse "Page of users"
// @Failure 400 {object} handlers.ErrorResponse "No users found"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /users [get]
func NewUserListHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, err := queryInt(r, "skip", defaultSkip)
		if err != nil || skip < 0 {
			writeError(w, http.StatusBadRequest, "invalid skip parameter")
			return
		}

		limit, err := queryInt(r, "limit", defaultLimit)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}

		users, total, err := svc.List(r.Context(), skip, limit)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoUsersFound):
				writeError(w, http.StatusBadRequest, "No users found")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		items := make([]*models.UserResponse, 0, len(users))
		for i := range users {
			items = append(items, models.NewUserResponse(&users[i]))
		}

		writeJSON(w, http.StatusOK, models.UserListResponse{
			Items: items,
			Total: total,
		})
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
