package identity

import "errors"

var (
	ErrNotFound = errors.New("profile not found")
	// ErrDuplicate is returned when a profile already exists for the user.
	ErrDuplicate = errors.New("profile already exists for user")
)
