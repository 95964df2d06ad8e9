package model

import "time"

// User represents a user in the database.
// CurrentToken holds the only session token that is still honoured; nil means logged out.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CurrentToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse carries the user summary and the freshly issued session token.
type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
