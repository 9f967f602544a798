package domain

import (
	"context"
	"errors"
	"time"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Identity is what a validated token asserts about its bearer.
type Identity struct {
	UserID    int64
	IsAdmin   bool
	TokenID   string // jti
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenPair is returned on login.
// swagger:model TokenPair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Authenticator issues and validates tokens. Validate returns one of the auth
// sentinel errors (missing, expired, invalid, revoked) on failure.
type Authenticator interface {
	Issue(ctx context.Context, userID int64) (*TokenPair, error)
	IssueAccess(ctx context.Context, userID int64) (string, error)
	Validate(ctx context.Context, token string, kind TokenKind) (*Identity, error)
	Revoke(ctx context.Context, identity *Identity) error
}

// Blocklist stores revoked token ids until their natural expiry.
type Blocklist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// Token validation failures. Each maps to its own machine code in API responses.
var (
	ErrMissingToken = errors.New("authorization required")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)
