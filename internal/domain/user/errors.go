package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")

	// ErrDuplicate is returned by repositories when a unique index rejects a
	// write that passed the existence checks.
	ErrDuplicate = errors.New("duplicate user")
)
