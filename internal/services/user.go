package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
)

// Error variables
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrNoUsersFound is returned for a page past the end of the user
	// set. An empty page is an error, not an empty success list.
	ErrNoUsersFound = errors.New("no users found")
)

// UserGetter defines read operations for user records.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error)
}

// UserMutator defines update and delete operations for user records.
type UserMutator interface {
	Update(ctx context.Context, userID uuid.UUID, patch *models.UserPatch) (*models.UserDB, error)
	Delete(ctx context.Context, userID uuid.UUID) (bool, error)
}

// UserCache caches user records between requests.
type UserCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Set(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService handles the user resource operations.
type UserService struct {
	reader      UserGetter
	writer      UserMutator
	cache       UserCache
	kafkaWriter KafkaWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserGetter, writer UserMutator, cache UserCache, kafkaWriter KafkaWriter) *UserService {
	return &UserService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// Get returns the user with the given ID, reading through the cache.
// Cache failures are logged and fall back to the store.
func (svc *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.Get(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, user); err != nil {
			logger.Log.Errorw("failed to cache user", "user_id", userID, "error", err)
		}
	}

	return user, nil
}

// Update validates the supplied fields and applies a partial update.
// Absent fields keep their stored values; a username or email collision
// with another user surfaces ErrUserAlreadyExists.
func (svc *UserService) Update(ctx context.Context, userID uuid.UUID, req *models.UserUpdate) (*models.UserDB, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	patch := &models.UserPatch{
		Username:          req.Username,
		Email:             req.Email,
		FullName:          req.FullName,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	}

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "error", err)
			return nil, err
		}
		hash := string(hashedPassword)
		patch.PasswordHash = &hash
	}

	user, err := svc.writer.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to update user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Delete(ctx, userID); err != nil {
			logger.Log.Errorw("failed to invalidate user cache", "user_id", userID, "error", err)
		}
	}

	publishUserEvent(ctx, svc.kafkaWriter, models.EventUserUpdated, user)

	return user, nil
}

// Delete removes the user record. Deleting an already-deleted user
// surfaces ErrUserNotFound.
func (svc *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	deleted, err := svc.writer.Delete(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "error", err)
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Delete(ctx, userID); err != nil {
			logger.Log.Errorw("failed to invalidate user cache", "user_id", userID, "error", err)
		}
	}

	publishUserEvent(ctx, svc.kafkaWriter, models.EventUserDeleted, &models.UserDB{UserID: userID})

	return nil
}

// List returns one page of users in creation order plus the total count.
// A page with no users is an ErrNoUsersFound failure.
func (svc *UserService) List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error) {
	users, total, err := svc.reader.List(ctx, skip, limit)
	if err != nil {
		logger.Log.Errorw("failed to list users", "skip", skip, "limit", limit, "error", err)
		return nil, 0, err
	}
	if len(users) == 0 {
		return nil, 0, ErrNoUsersFound
	}

	return users, total, nil
}
