package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// ErrUniqueViolation is returned when an insert or update collides with
// the unique username/email constraints. The database constraint is the
// final authority on duplicates; concurrent writers race on it, not on a
// separate existence check.
var ErrUniqueViolation = errors.New("unique constraint violation")

// pgUniqueViolation is the postgres error code for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// UserReadRepository provides read access to user records.
type UserReadRepository struct {
	db *sqlx.DB
}

// NewUserReadRepository creates a new UserReadRepository.
func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

const userColumns = `user_id, username, email, password_hash, full_name, bio, profile_picture_url, last_login_at, created_at, updated_at`

// GetByID returns the user with the given ID, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get user by id", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

// GetByUsername returns the user with the given username, or nil when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get user by username", "username", username, "error", err)
		return nil, err
	}

	return &user, nil
}

// FindByUsernameOrEmail returns a user matching either the username or
// the email, or nil when neither matches. Both arguments are expected to
// be normalized lowercase.
func (r *UserReadRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to find user by username or email", "username", username, "email", email, "error", err)
		return nil, err
	}

	return &user, nil
}

// List returns one page of users in creation order plus the total count.
func (r *UserReadRepository) List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at, user_id
		OFFSET $1 LIMIT $2
	`

	users := make([]models.UserDB, 0, limit)
	if err := r.db.SelectContext(ctx, &users, query, skip, limit); err != nil {
		logger.Log.Errorw("failed to list users", "skip", skip, "limit", limit, "error", err)
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Log.Errorw("failed to count users", "error", err)
		return nil, 0, err
	}

	return users, total, nil
}

// UserWriteRepository provides write access to user records.
type UserWriteRepository struct {
	db *sqlx.DB
}

// NewUserWriteRepository creates a new UserWriteRepository.
func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user record. A collision on the unique username or
// email constraints yields ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (user_id, username, email, password_hash, full_name, bio, profile_picture_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.UserID, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.Bio, user.ProfilePictureURL,
		user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "username", user.Username, "error", err)
		return err
	}

	return nil
}

// Update applies a partial update and returns the updated record, or nil
// when the user does not exist. Supplied nil fields keep their stored
// values; updated_at is always bumped.
func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, patch *models.UserPatch) (*models.UserDB, error) {
	const query = `
		UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			password_hash = COALESCE($4, password_hash),
			full_name = COALESCE($5, full_name),
			bio = COALESCE($6, bio),
			profile_picture_url = COALESCE($7, profile_picture_url),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns + `
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID,
		patch.Username, patch.Email, patch.PasswordHash,
		patch.FullName, patch.Bio, patch.ProfilePictureURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrUniqueViolation
	}
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

// UpdateLastLogin records a successful login timestamp.
func (r *UserWriteRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const query = `
		UPDATE users SET last_login_at = $2 WHERE user_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, userID, at); err != nil {
		logger.Log.Errorw("failed to update last login", "user_id", userID, "error", err)
		return err
	}

	return nil
}

// Delete removes the user record and reports whether a row was deleted.
func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM users WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "error", err)
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
