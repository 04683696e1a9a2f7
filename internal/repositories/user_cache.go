package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// UserCacheRepository caches user records in Redis keyed by user ID.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached records
}

// NewUserCacheRepository creates a new repository instance with the given TTL.
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// Get returns the cached user record, or nil on a cache miss.
func (r *UserCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	key := userCacheKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to read user cache", "key", key, "error", err)
		return nil, err
	}

	var user models.UserDB
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		logger.Log.Errorw("failed to decode cached user", "key", key, "error", err)
		return nil, err
	}

	return &user, nil
}

// Set caches the user record with the configured expiration.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.UserDB) error {
	key := userCacheKey(user.UserID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, r.exp).Err(); err != nil {
		logger.Log.Errorw("failed to write user cache", "key", key, "error", err)
		return err
	}

	return nil
}

// Delete drops the cached record for the given user.
func (r *UserCacheRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	key := userCacheKey(userID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logger.Log.Errorw("failed to invalidate user cache", "key", key, "error", err)
		return err
	}

	return nil
}
