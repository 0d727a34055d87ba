package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the SmartLink application. Handlers map these onto
// the HTTP taxonomy: not found, gone, validation, unauthorized, forbidden,
// upstream failure.

// ErrLinkNotFound is returned when a short code doesn't exist, or when the
// link exists but is disabled. The two cases are deliberately
// indistinguishable so disabled links don't leak their existence.
var ErrLinkNotFound = errors.New("link not found")

// ErrLinkExpired is returned when a link's expiry timestamp has passed.
// Distinct from ErrLinkNotFound: the client gets 410 rather than 404.
var ErrLinkExpired = errors.New("link expired")

// ErrAliasTaken is returned when a requested custom alias is already in use.
var ErrAliasTaken = errors.New("custom alias already taken")

// ErrShortCodeGenerationFailed is returned when we can't generate a unique short code
var ErrShortCodeGenerationFailed = errors.New("failed to generate unique short code")

// ErrUserExists is returned when signing up with an email that is taken.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when no account matches the given identifier.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidPassword is returned when the password doesn't match the stored hash.
var ErrInvalidPassword = errors.New("invalid password")

// ErrInvalidToken is returned when a bearer token is missing, malformed or expired.
var ErrInvalidToken = errors.New("invalid token")

// ErrForbidden is returned when an authenticated user lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrClickRecordingFailed is returned when click recording fails
type ErrClickRecordingFailed struct {
	LinkID uint
	Reason string
}

func (e ErrClickRecordingFailed) Error() string {
	return fmt.Sprintf("failed to record click for link %d: %s", e.LinkID, e.Reason)
}

// ErrURLCheckFailed is returned when URL health check fails
type ErrURLCheckFailed struct {
	URL    string
	Reason string
}

func (e ErrURLCheckFailed) Error() string {
	return fmt.Sprintf("failed to check URL %s: %s", e.URL, e.Reason)
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
