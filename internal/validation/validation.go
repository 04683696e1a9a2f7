package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Failure kinds reported by the field validators.
const (
	KindInvalidUsername = "invalid_username"
	KindInvalidEmail    = "invalid_email"
	KindInvalidPassword = "invalid_password"
	KindInvalidURL      = "invalid_url"
	KindInvalidField    = "invalid_field"
)

// Username constraints.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

// Password constraints.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 255
)

// Max stored widths for the remaining user fields.
const (
	EmailMaxLength    = 255
	FullNameMaxLength = 100
	BioMaxLength      = 500
	URLMaxLength      = 255
)

// allowedEmailTLDs is the fixed allow-list of top-level domains accepted
// for user email addresses.
var allowedEmailTLDs = map[string]struct{}{
	"com": {},
	"org": {},
	"gov": {},
	"edu": {},
	"net": {},
}

// allowedImageExtensions lists the accepted profile picture file extensions.
var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// FieldError describes a single failed validation rule for one field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates field errors collected across a whole payload.
type Errors []*FieldError

// Error implements the error interface by joining all field messages.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

func usernameError(msg string) *FieldError {
	return &FieldError{Field: "username", Kind: KindInvalidUsername, Message: msg}
}

// Username validates the raw username and returns its normalized
// (lowercased) form. Rules are checked against the raw string in order:
// length, character set, start character, end character. Case is not a
// validity criterion, so lowercasing happens after the shape checks.
func Username(raw string) (string, *FieldError) {
	s := strings.TrimSpace(raw)

	if len(s) < UsernameMinLength || len(s) > UsernameMaxLength {
		return "", usernameError(fmt.Sprintf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength))
	}

	for _, r := range s {
		if !isUsernameRune(r) {
			return "", usernameError(fmt.Sprintf("username contains invalid character %q", r))
		}
	}

	first := rune(s[0])
	if !isASCIILetter(first) {
		return "", usernameError("username must start with a letter")
	}

	last := rune(s[len(s)-1])
	if !isASCIILetter(last) && !isASCIIDigit(last) {
		return "", usernameError("username must end with a letter or digit")
	}

	return strings.ToLower(s), nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isUsernameRune(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '_' || r == '-'
}

func emailError(msg string) *FieldError {
	return &FieldError{Field: "email", Kind: KindInvalidEmail, Message: msg}
}

// Email validates the raw address and returns it fully lowercased.
// Both the local part and the domain are lowercased; the domain's
// top-level label must belong to the fixed allow-list.
func Email(raw string) (string, *FieldError) {
	s := strings.TrimSpace(raw)

	if len(s) > EmailMaxLength {
		return "", emailError(fmt.Sprintf("email must be at most %d characters", EmailMaxLength))
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", emailError("not a syntactically valid email")
	}

	at := strings.LastIndex(s, "@")
	domain := s[at+1:]

	dot := strings.LastIndex(domain, ".")
	if dot < 0 {
		return "", emailError("unsupported domain")
	}
	tld := strings.ToLower(domain[dot+1:])
	if _, ok := allowedEmailTLDs[tld]; !ok {
		return "", emailError("unsupported domain")
	}

	return strings.ToLower(s), nil
}

func passwordError(msg string) *FieldError {
	return &FieldError{Field: "password", Kind: KindInvalidPassword, Message: msg}
}

// Password checks the raw password against the creation rules. The value
// is never transformed; hashing happens downstream. Rules are evaluated
// in a fixed order and only the first failure is reported.
func Password(raw string) *FieldError {
	if len(raw) < PasswordMinLength || len(raw) > PasswordMaxLength {
		return passwordError(fmt.Sprintf("password must be between %d and %d characters", PasswordMinLength, PasswordMaxLength))
	}

	for _, r := range raw {
		if unicode.IsSpace(r) {
			return passwordError("password must not contain whitespace")
		}
	}

	runes := []rune(raw)
	if !unicode.IsLetter(runes[0]) {
		return passwordError("password must start with a letter")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return passwordError("password must contain at least one uppercase letter")
	case !hasLower:
		return passwordError("password must contain at least one lowercase letter")
	case !hasDigit:
		return passwordError("password must contain at least one digit")
	case !hasSpecial:
		return passwordError("password must contain at least one special character")
	}

	return nil
}

func urlError(msg string) *FieldError {
	return &FieldError{Field: "profile_picture_url", Kind: KindInvalidURL, Message: msg}
}

// ProfilePictureURL validates an optional profile picture URL and returns
// it with the scheme and host lowercased. The path is preserved as given;
// the extension check is case-insensitive.
func ProfilePictureURL(raw string) (string, *FieldError) {
	s := strings.TrimSpace(raw)

	if len(s) > URLMaxLength {
		return "", urlError(fmt.Sprintf("profile picture URL too long, must be at most %d characters", URLMaxLength))
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", urlError("not a syntactically valid URL")
	}

	if strings.ToLower(u.Scheme) != "https" {
		return "", urlError("wrong scheme, only https is supported")
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", urlError("unsupported extension, must be one of .jpg, .jpeg, .png")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), nil
}

// FullName checks the optional full name against its stored width.
func FullName(raw string) *FieldError {
	if len(raw) > FullNameMaxLength {
		return &FieldError{
			Field:   "full_name",
			Kind:    KindInvalidField,
			Message: fmt.Sprintf("full name must be at most %d characters", FullNameMaxLength),
		}
	}
	return nil
}

// Bio checks the optional bio against its stored width.
func Bio(raw string) *FieldError {
	if len(raw) > BioMaxLength {
		return &FieldError{
			Field:   "bio",
			Kind:    KindInvalidField,
			Message: fmt.Sprintf("bio must be at most %d characters", BioMaxLength),
		}
	}
	return nil
}
