package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

// UserBase holds the user profile fields shared by creation and update
// payloads. Validate normalizes the payload in place and returns every
// field failure found.
// swagger:model UserBase
type UserBase struct {
	// Username
	// required: true
	// example: john_doe_123
	Username string `json:"username"`

	// Email
	// required: true
	// example: john.doe@example.com
	Email string `json:"email"`

	// Full name
	// example: John Doe
	FullName *string `json:"full_name,omitempty"`

	// Bio
	// example: Backend engineer
	Bio *string `json:"bio,omitempty"`

	// Profile picture URL
	// example: https://example.com/avatars/john_doe.jpg
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// Validate runs the field validators over every present field, collecting
// failures across fields. Username and email are normalized in place.
func (u *UserBase) Validate() validation.Errors {
	var errs validation.Errors

	username, err := validation.Username(u.Username)
	if err != nil {
		errs = append(errs, err)
	} else {
		u.Username = username
	}

	email, err := validation.Email(u.Email)
	if err != nil {
		errs = append(errs, err)
	} else {
		u.Email = email
	}

	if u.FullName != nil {
		if err := validation.FullName(*u.FullName); err != nil {
			errs = append(errs, err)
		}
	}

	if u.Bio != nil {
		if err := validation.Bio(*u.Bio); err != nil {
			errs = append(errs, err)
		}
	}

	if u.ProfilePictureURL != nil {
		normalized, err := validation.ProfilePictureURL(*u.ProfilePictureURL)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.ProfilePictureURL = &normalized
		}
	}

	return errs
}

// UserCreate is the payload for registration and authenticated user
// creation. The password is validated but never transformed here.
// swagger:model UserCreate
type UserCreate struct {
	UserBase

	// Password
	// required: true
	// example: SecurePassword123!
	Password string `json:"password"`
}

// Validate applies the UserBase validators plus the password rules.
func (u *UserCreate) Validate() validation.Errors {
	errs := u.UserBase.Validate()

	if err := validation.Password(u.Password); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// UserUpdate is a partial update payload. Every field is optional; a
// present field is validated by the same rules as on creation, an absent
// field leaves the stored value untouched.
// swagger:model UserUpdate
type UserUpdate struct {
	Username          *string `json:"username,omitempty"`
	Email             *string `json:"email,omitempty"`
	Password          *string `json:"password,omitempty"`
	FullName          *string `json:"full_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// Validate checks only the supplied fields, normalizing username, email
// and profile picture URL in place.
func (u *UserUpdate) Validate() validation.Errors {
	var errs validation.Errors

	if u.Username != nil {
		username, err := validation.Username(*u.Username)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.Username = &username
		}
	}

	if u.Email != nil {
		email, err := validation.Email(*u.Email)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.Email = &email
		}
	}

	if u.Password != nil {
		if err := validation.Password(*u.Password); err != nil {
			errs = append(errs, err)
		}
	}

	if u.FullName != nil {
		if err := validation.FullName(*u.FullName); err != nil {
			errs = append(errs, err)
		}
	}

	if u.Bio != nil {
		if err := validation.Bio(*u.Bio); err != nil {
			errs = append(errs, err)
		}
	}

	if u.ProfilePictureURL != nil {
		normalized, err := validation.ProfilePictureURL(*u.ProfilePictureURL)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.ProfilePictureURL = &normalized
		}
	}

	return errs
}

// IsEmpty reports whether the update supplies no fields at all.
func (u *UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil &&
		u.FullName == nil && u.Bio == nil && u.ProfilePictureURL == nil
}

// Link is a hypermedia reference attached to a user response.
// swagger:model Link
type Link struct {
	// Relation name
	// example: self
	Rel string `json:"rel"`

	// Target URL
	// example: /users/6f1f9c2e-8d7a-4b53-9df2-3f3a4f3a2b10
	Href string `json:"href"`

	// HTTP method
	// example: GET
	Method string `json:"method"`
}

// UserResponse is the output projection of a user record. It never
// carries the password or its hash.
// swagger:model UserResponse
type UserResponse struct {
	// User ID
	ID uuid.UUID `json:"id"`

	// Username
	Username string `json:"username"`

	// Email
	Email string `json:"email"`

	// Full name
	FullName *string `json:"full_name"`

	// Bio
	Bio *string `json:"bio"`

	// Profile picture URL
	ProfilePictureURL *string `json:"profile_picture_url"`

	// Last login timestamp, null until first login
	LastLoginAt *time.Time `json:"last_login_at"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`

	// Last update timestamp
	UpdatedAt time.Time `json:"updated_at"`

	// Hypermedia links
	Links []Link `json:"links"`
}

// NewUserResponse projects a database record into the response shape,
// attaching the standard hypermedia links.
func NewUserResponse(user *UserDB) *UserResponse {
	href := "/users/" + user.UserID.String()
	return &UserResponse{
		ID:                user.UserID,
		Username:          user.Username,
		Email:             user.Email,
		FullName:          user.FullName,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		LastLoginAt:       user.LastLoginAt,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
		Links: []Link{
			{Rel: "self", Href: href, Method: "GET"},
			{Rel: "update", Href: href, Method: "PUT"},
			{Rel: "delete", Href: href, Method: "DELETE"},
		},
	}
}

// UserListResponse is one page of users plus the total count.
// swagger:model UserListResponse
type UserListResponse struct {
	// Page of users
	Items []*UserResponse `json:"items"`

	// Total number of users
	// example: 42
	Total int64 `json:"total"`
}
