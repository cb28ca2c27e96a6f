package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Varun5711/taskflow/internal/auth"
	usermodel "github.com/Varun5711/taskflow/internal/models/user"
	"github.com/Varun5711/taskflow/internal/storage"
	"github.com/Varun5711/taskflow/internal/validation"
)

type AuthService struct {
	users      storage.UserStore
	jwtManager *auth.JWTManager
	hasher     *auth.PasswordHasher
}

func NewAuthService(users storage.UserStore, jwtManager *auth.JWTManager, hasher *auth.PasswordHasher) *AuthService {
	if hasher == nil {
		hasher = auth.NewPasswordHasher(0)
	}
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		hasher:     hasher,
	}
}

// Register validates req, creates the user and issues a token for it.
// Validation failures are returned as *validation.ValidationError before the
// store is consulted.
func (s *AuthService) Register(ctx context.Context, req *usermodel.RegisterRequest) (*usermodel.AuthResult, error) {
	if err := validation.ValidateRegister(req); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateIdentity
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &usermodel.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	}, passwordHash)
	if err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login checks the credentials and issues a fresh token. An unknown email and
// a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *usermodel.LoginRequest) (*usermodel.AuthResult, error) {
	if err := validation.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*usermodel.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	public := user.Public()
	return &public, nil
}

func (s *AuthService) issue(user *usermodel.User) (*usermodel.AuthResult, error) {
	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &usermodel.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}
