package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
	"github.com/weatherlog/weatherlog-go/internal/crypto"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/repository"
)

var (
	ErrUserNotFound       = apperr.New(apperr.NotFound, "User not found")
	ErrInvalidCredentials = apperr.New(apperr.InvalidCredential, "Email or Password invalid")
	ErrEmailTaken         = apperr.New(apperr.InvalidInput, "Email already in use")
	ErrTokenMissing       = apperr.New(apperr.Missing, "Token not provided")
	ErrTokenMalformed     = apperr.New(apperr.Malformed, "Token invalid")
	ErrTokenExpired       = apperr.New(apperr.Expired, "Token expired")
	ErrTokenSuperseded    = apperr.New(apperr.Superseded, "User already logged in")
)

// AuthService handles registration and the single-session token lifecycle.
// A user has at most one valid token: the one stored in users.token.
type AuthService struct {
	users     UserStore
	hasher    *crypto.PasswordHasher
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *crypto.PasswordHasher, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtSecret: secret,
		jwtExpiry: expiry,
		now:       time.Now,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.RegisterResponse, error) {
	if err := validateRequest(req); err != nil {
		return model.RegisterResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.RegisterResponse{}, internalError(err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.RegisterResponse{}, ErrEmailTaken
		}
		return model.RegisterResponse{}, internalError(err)
	}

	return model.RegisterResponse{Name: user.Name, Email: user.Email}, nil
}

// Login checks the credentials, issues a session token and stores it as the user's
// current token, invalidating whatever token was stored before.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrUserNotFound
		}
		return model.LoginResponse{}, internalError(err)
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, internalError(err)
	}
	if !match {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(crypto.TokenSubject{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}, s.jwtSecret, s.now(), s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, internalError(err)
	}

	if err := s.users.SetToken(ctx, user.ID, &token); err != nil {
		return model.LoginResponse{}, internalError(err)
	}

	return model.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

// Verify resolves a session token to its user id. Expiry is checked before the
// stored-token comparison, so an expired token fails as expired even if it is
// still the user's current one.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}

	claims, err := crypto.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", internalError(err)
	}

	if user.CurrentToken == nil || *user.CurrentToken != token {
		return "", ErrTokenSuperseded
	}

	return user.ID, nil
}

// Logout verifies token and then clears the owner's current token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}

	if err := s.users.SetToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return internalError(err)
	}
	return nil
}

// Me returns the public profile of userID.
func (s *AuthService) Me(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, internalError(err)
	}

	return model.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
