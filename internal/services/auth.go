package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
)

// Error variables
var (
	// ErrUserAlreadyExists deliberately does not say which field collided.
	ErrUserAlreadyExists = errors.New("username and/or email already exist")
	// ErrInvalidCredentials is identical for an unknown username and a
	// wrong password, so login never reveals whether a username exists.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         JWTGenerator
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		kafkaWriter: kafkaWriter,
	}
}

// Register validates the payload, checks username/email uniqueness and
// persists the new user with a hashed password. Validation failures are
// returned as validation.Errors; duplicates as ErrUserAlreadyExists.
// The uniqueness pre-check is advisory only: under concurrent
// registrations the store's unique constraints decide, and the losing
// insert also surfaces ErrUserAlreadyExists.
func (svc *AuthService) Register(ctx context.Context, req *models.UserCreate) (*models.UserDB, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	existing, err := svc.reader.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("duplicate registration rejected", "username", req.Username)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.UserDB{
		UserID:            uuid.New(),
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      string(hashedPassword),
		FullName:          req.FullName,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "error", err)
		return nil, err
	}

	publishUserEvent(ctx, svc.kafkaWriter, models.EventUserRegistered, user)

	return user, nil
}

// Login authenticates a user and returns a JWT token. The username is
// normalized before lookup; an unknown username and a wrong password are
// indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login rejected", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login rejected", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := svc.writer.UpdateLastLogin(ctx, user.UserID, time.Now().UTC()); err != nil {
		logger.Log.Errorw("failed to update last login", "user_id", user.UserID, "error", err)
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "error", err)
		return "", err
	}

	return token, nil
}
