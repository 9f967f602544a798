package domain

import (
	"context"
	"time"
)

// User represents a registered user. Password material is never serialized.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, passwordHash, salt string, createdAt time.Time) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
	}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines account management and the token lifecycle.
type UserService interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh issues a new access token for the refresh identity and revokes the used refresh token.
	Refresh(ctx context.Context, refresh *Identity) (string, error)
	Logout(ctx context.Context, identity *Identity) error
	GetByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}
