package service

import "errors"

// The messages double as the client-facing error text.
var (
	ErrDuplicateIdentity  = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
)
