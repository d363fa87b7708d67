package domain

import "errors"

var (
	ErrLinkNotFound = errors.New("link not found")
	ErrInvalidURL   = errors.New("invalid url")
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrAliasTaken is returned when a requested custom alias collides with an
	// existing alias or short code.
	ErrAliasTaken = errors.New("alias already taken")

	// ErrCodeConflict is the storage-level signal that an insert lost the race
	// for a short code or alias. The allocator retries on it; it only escapes
	// for explicitly requested aliases.
	ErrCodeConflict = errors.New("short code already exists")

	// ErrCodeExhausted is returned when no free short code could be found
	// within the retry cap.
	ErrCodeExhausted = errors.New("short code generation failed after max retries")

	ErrForbidden = errors.New("link not owned by caller")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
