package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
type UserDB struct {
	UserID            uuid.UUID  `json:"id" db:"user_id"`                                         // Primary key
	Username          string     `json:"username" db:"username"`                                  // Unique username, stored lowercase
	Email             string     `json:"email" db:"email"`                                        // Unique email, stored lowercase
	PasswordHash      string     `json:"-" db:"password_hash"`                                    // Bcrypt hash, never serialized
	FullName          *string    `json:"full_name,omitempty" db:"full_name"`                      // Optional full name
	Bio               *string    `json:"bio,omitempty" db:"bio"`                                  // Optional bio
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty" db:"profile_picture_url"` // Optional avatar URL
	LastLoginAt       *time.Time `json:"last_login_at" db:"last_login_at"`                        // Nil until first login
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`                              // Creation timestamp
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`                              // Last update timestamp
}

// UserPatch carries the column values of a partial user update.
// Nil fields leave the stored value untouched.
type UserPatch struct {
	Username          *string `db:"username"`
	Email             *string `db:"email"`
	PasswordHash      *string `db:"password_hash"`
	FullName          *string `db:"full_name"`
	Bio               *string `db:"bio"`
	ProfilePictureURL *string `db:"profile_picture_url"`
}
