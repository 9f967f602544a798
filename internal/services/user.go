package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"eventrsvp/internal/domain"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
)

type userService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	auth     domain.Authenticator
	now      func() time.Time
}

// NewUserService creates a UserService with the given repository and auth ports.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, auth domain.Authenticator) domain.UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		auth:     auth,
		now:      time.Now,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	if n := len(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be between %d and %d characters", domain.ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, recordErr(span, fmt.Errorf("get user: %w", err))
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("generate salt: %w", err))
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("hash password: %w", err))
	}
	user := domain.NewUser(username, hash, salt, s.now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, recordErr(span, fmt.Errorf("create user: %w", err))
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, recordErr(span, fmt.Errorf("get user: %w", err))
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	pair, err := s.auth.Issue(ctx, user.ID)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("issue tokens: %w", err))
	}
	return pair, nil
}

// Refresh rotates the refresh token: the presented one is revoked once a new
// access token has been issued.
func (s *userService) Refresh(ctx context.Context, refresh *domain.Identity) (string, error) {
	ctx, span := tracer.Start(ctx, "UserService.Refresh")
	defer span.End()

	if refresh == nil || refresh.Kind != domain.TokenKindRefresh {
		return "", domain.ErrInvalidToken
	}
	span.SetAttributes(attribute.Int64("user.id", refresh.UserID))
	if _, err := s.userRepo.GetByID(ctx, refresh.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", recordErr(span, fmt.Errorf("get user: %w", err))
	}
	access, err := s.auth.IssueAccess(ctx, refresh.UserID)
	if err != nil {
		return "", recordErr(span, fmt.Errorf("issue access token: %w", err))
	}
	if err := s.auth.Revoke(ctx, refresh); err != nil {
		return "", recordErr(span, fmt.Errorf("revoke refresh token: %w", err))
	}
	return access, nil
}

func (s *userService) Logout(ctx context.Context, identity *domain.Identity) error {
	ctx, span := tracer.Start(ctx, "UserService.Logout", trace.WithAttributes(
		attribute.Bool("identity.present", identity != nil),
	))
	defer span.End()

	if identity == nil {
		return domain.ErrInvalidToken
	}
	if err := s.auth.Revoke(ctx, identity); err != nil {
		return recordErr(span, fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
