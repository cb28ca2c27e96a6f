package storage

import (
	"context"
	"errors"

	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
// Stores must enforce this atomically; callers may not rely on an earlier
// GetUserByEmail having returned nil.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserStore persists user records. Lookups return (nil, nil) when no record
// matches.
type UserStore interface {
	CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, id int64) (*usermodel.User, error)
}
