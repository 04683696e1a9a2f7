package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

func setupUserPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(100),
		bio VARCHAR(500),
		profile_picture_url VARCHAR(255),
		last_login_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func newStoredUser(username, email string) *models.UserDB {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserWriteRepository_SaveAndGet(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	user := newStoredUser("alice", "alice@example.com")
	fullName := "Alice Example"
	user.FullName = &fullName

	assert.NoError(t, writeRepo.Save(ctx, user))

	got, err := readRepo.GetByID(ctx, user.UserID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.Equal(t, &fullName, got.FullName)
	assert.Nil(t, got.Bio)
	assert.Nil(t, got.LastLoginAt)
}

func TestUserWriteRepository_Save_Duplicate(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	assert.NoError(t, writeRepo.Save(ctx, newStoredUser("alice", "alice@example.com")))

	t.Run("duplicate username", func(t *testing.T) {
		err := writeRepo.Save(ctx, newStoredUser("alice", "other@example.com"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := writeRepo.Save(ctx, newStoredUser("other", "alice@example.com"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	assert.NoError(t, writeRepo.Save(ctx, newStoredUser("charlie", "charlie@example.com")))

	user, err := readRepo.GetByUsername(ctx, "charlie")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "charlie", user.Username)

	missing, err := readRepo.GetByUsername(ctx, "nonexistent")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserReadRepository_FindByUsernameOrEmail(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	assert.NoError(t, writeRepo.Save(ctx, newStoredUser("charlie", "charlie@example.com")))
	assert.NoError(t, writeRepo.Save(ctx, newStoredUser("dave", "dave@example.com")))

	t.Run("by username", func(t *testing.T) {
		user, err := readRepo.FindByUsernameOrEmail(ctx, "charlie", "unused@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := readRepo.FindByUsernameOrEmail(ctx, "unused", "dave@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		user, err := readRepo.FindByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	user := newStoredUser("alice", "alice@example.com")
	assert.NoError(t, writeRepo.Save(ctx, user))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		newEmail := "alice.new@example.com"
		updated, err := writeRepo.Update(ctx, user.UserID, &models.UserPatch{Email: &newEmail})
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, newEmail, updated.Email)
		assert.Equal(t, "alice", updated.Username)
		assert.Equal(t, "$2a$10$hash", updated.PasswordHash)
		assert.True(t, updated.UpdatedAt.After(user.UpdatedAt))
	})

	t.Run("missing user", func(t *testing.T) {
		newEmail := "ghost@example.com"
		updated, err := writeRepo.Update(ctx, uuid.New(), &models.UserPatch{Email: &newEmail})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("duplicate email", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, newStoredUser("bob", "bob@example.com")))

		takenEmail := "bob@example.com"
		updated, err := writeRepo.Update(ctx, user.UserID, &models.UserPatch{Email: &takenEmail})
		assert.ErrorIs(t, err, ErrUniqueViolation)
		assert.Nil(t, updated)
	})
}

func TestUserWriteRepository_UpdateLastLogin(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	user := newStoredUser("alice", "alice@example.com")
	assert.NoError(t, writeRepo.Save(ctx, user))

	loginAt := time.Now().UTC().Truncate(time.Microsecond)
	assert.NoError(t, writeRepo.UpdateLastLogin(ctx, user.UserID, loginAt))

	got, err := readRepo.GetByID(ctx, user.UserID)
	assert.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(loginAt))
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	user := newStoredUser("alice", "alice@example.com")
	assert.NoError(t, writeRepo.Save(ctx, user))

	deleted, err := writeRepo.Delete(ctx, user.UserID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	got, err := readRepo.GetByID(ctx, user.UserID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Second delete on the same ID affects no rows
	deleted, err = writeRepo.Delete(ctx, user.UserID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserReadRepository_List(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
	for i := 0; i < 3; i++ {
		user := newStoredUser(
			fmt.Sprintf("user%d", i),
			fmt.Sprintf("user%d@example.com", i),
		)
		user.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		user.UpdatedAt = user.CreatedAt
		assert.NoError(t, writeRepo.Save(ctx, user))
	}

	t.Run("first page in creation order", func(t *testing.T) {
		users, total, err := readRepo.List(ctx, 0, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 2)
		assert.Equal(t, "user0", users[0].Username)
		assert.Equal(t, "user1", users[1].Username)
	})

	t.Run("last page", func(t *testing.T) {
		users, total, err := readRepo.List(ctx, 2, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 1)
		assert.Equal(t, "user2", users[0].Username)
	})

	t.Run("page past the end", func(t *testing.T) {
		users, total, err := readRepo.List(ctx, 10, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, users)
	})
}
