package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test_user", "test_user"},
		{"test-user", "test-user"},
		{"testuser123", "testuser123"},
		{"JOHN_Doe_123", "john_doe_123"},
		{"john_doe_123", "john_doe_123"},
		{"John_DOE_123", "john_doe_123"},
		{"abc", "abc"},
		{strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"aJohnDoe1", "ajohndoe1"},
		{"z1234567890", "z1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Username(tt.input)
			assert.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUsername_NormalizationIdempotent(t *testing.T) {
	once, err := Username("JOHN_Doe_123")
	assert.Nil(t, err)

	twice, err := Username(once)
	assert.Nil(t, err)
	assert.Equal(t, once, twice)
}

func TestUsername_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"space", "john doe", "invalid character"},
		{"question mark", "john?doe", "invalid character"},
		{"at sign", "john@", "invalid character"},
		{"starts with digit", "1john", "start with a letter"},
		{"starts with digit 9", "9john", "start with a letter"},
		{"starts with underscore", "_johndoe", "start with a letter"},
		{"starts with hyphen", "-johndoe", "start with a letter"},
		{"ends with underscore", "johndoe_", "end with a letter or digit"},
		{"ends with hyphen", "johndoe-", "end with a letter or digit"},
		{"too short", "ab", "between 3 and 50"},
		{"too long", strings.Repeat("a", 51), "between 3 and 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Username(tt.input)
			assert.NotNil(t, err)
			assert.Equal(t, "username", err.Field)
			assert.Equal(t, KindInvalidUsername, err.Kind)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestEmail_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "john.doe@example.com"},
		{"John.Doe@example.com", "john.doe@example.com"},
		{"USER@EXAMPLE.ORG", "user@example.org"},
		{"a@b.gov", "a@b.gov"},
		{"student@school.edu", "student@school.edu"},
		{"ops@host.net", "ops@host.net"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Email(tt.input)
			assert.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEmail_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"not an email", "notanemail", "not a syntactically valid email"},
		{"missing local part", "@example.com", "not a syntactically valid email"},
		{"bad TLD", "invalid@domain.xyz", "unsupported domain"},
		{"no TLD", "user@localhost", "unsupported domain"},
		{"too long", strings.Repeat("a", 250) + "@example.com", "at most 255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Email(tt.input)
			assert.NotNil(t, err)
			assert.Equal(t, "email", err.Field)
			assert.Equal(t, KindInvalidEmail, err.Kind)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestPassword_Valid(t *testing.T) {
	passwords := []string{
		"ValidPassword1!",
		"SecurePassword123!",
		"MySuperPassword$1234",
		"Aa1!Aa1!",
	}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			assert.Nil(t, Password(password))
		})
	}
}

func TestPassword_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"too short", "Short7!", "between 8 and 255"},
		{"too long", "A" + strings.Repeat("a", 253) + "1!x", "between 8 and 255"},
		{"whitespace", "Space Password123!", "whitespace"},
		{"starts with digit", "1startswithdigit", "start with a letter"},
		{"no uppercase", "nouppercase123!", "uppercase"},
		{"no lowercase", "NOLOWERCASE123!", "lowercase"},
		{"no digit", "NoDigitPassword!", "digit"},
		{"no special", "NoSpecialCharacter123", "special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.input)
			assert.NotNil(t, err)
			assert.Equal(t, "password", err.Field)
			assert.Equal(t, KindInvalidPassword, err.Kind)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestPassword_RuleOrder(t *testing.T) {
	// Multiple rules fail; only the first in evaluation order is reported.
	err := Password("short")
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "between 8 and 255")

	err = Password("1 234567")
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "whitespace")

	err = Password("12345678")
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "start with a letter")
}

func TestProfilePictureURL_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/avatars/john_doe.jpg", "https://example.com/avatars/john_doe.jpg"},
		{"https://example.com/avatars/john_doe.jpeg", "https://example.com/avatars/john_doe.jpeg"},
		{"https://example.com/avatars/john_doe.png", "https://example.com/avatars/john_doe.png"},
		// Extension check is case-insensitive, path case is preserved
		{"https://example.com/Avatars/John.PNG", "https://example.com/Avatars/John.PNG"},
		// Scheme and host are lowercased
		{"HTTPS://Example.COM/a.jpg", "https://example.com/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ProfilePictureURL(tt.input)
			assert.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestProfilePictureURL_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"gif extension", "https://example.com/a.gif", "unsupported extension"},
		{"bmp extension", "https://example.com/a.bmp", "unsupported extension"},
		{"no extension", "https://example.com/a", "unsupported extension"},
		{"ftp scheme", "ftp://example.com/a.jpg", "wrong scheme"},
		{"http scheme", "http://example.com/a.jpg", "wrong scheme"},
		{"no host", "not a url", "not a syntactically valid URL"},
		{"too long", "https://example.com/" + strings.Repeat("a", 240) + ".jpg", "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProfilePictureURL(tt.input)
			assert.NotNil(t, err)
			assert.Equal(t, "profile_picture_url", err.Field)
			assert.Equal(t, KindInvalidURL, err.Kind)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestFullNameAndBio_Lengths(t *testing.T) {
	assert.Nil(t, FullName("John Doe"))
	assert.Nil(t, FullName(strings.Repeat("a", FullNameMaxLength)))
	assert.NotNil(t, FullName(strings.Repeat("a", FullNameMaxLength+1)))

	assert.Nil(t, Bio("Backend engineer"))
	assert.Nil(t, Bio(strings.Repeat("a", BioMaxLength)))
	assert.NotNil(t, Bio(strings.Repeat("a", BioMaxLength+1)))
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: "username", Kind: KindInvalidUsername, Message: "username must start with a letter"},
		{Field: "email", Kind: KindInvalidEmail, Message: "unsupported domain"},
	}

	msg := errs.Error()
	assert.Contains(t, msg, "username:")
	assert.Contains(t, msg, "email:")
}
