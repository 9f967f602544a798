package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"eventrsvp/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Type    domain.TokenKind `json:"type"`
	IsAdmin bool             `json:"is_admin"`
}

// JWTConfig configures the HS256 authenticator.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// AdminUserIDs receive is_admin=true at issuance.
	AdminUserIDs []int64
}

type jwtAuthenticator struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	admins     map[int64]struct{}
	blocklist  domain.Blocklist
	now        func() time.Time
}

// NewJWTAuthenticator returns an Authenticator that signs HS256 JWTs carrying a
// unique jti and checks every validated token against blocklist.
func NewJWTAuthenticator(cfg JWTConfig, blocklist domain.Blocklist) domain.Authenticator {
	admins := make(map[int64]struct{}, len(cfg.AdminUserIDs))
	for _, id := range cfg.AdminUserIDs {
		admins[id] = struct{}{}
	}
	return &jwtAuthenticator{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		admins:     admins,
		blocklist:  blocklist,
		now:        time.Now,
	}
}

func (a *jwtAuthenticator) Issue(_ context.Context, userID int64) (*domain.TokenPair, error) {
	access, err := a.sign(userID, domain.TokenKindAccess, a.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := a.sign(userID, domain.TokenKindRefresh, a.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (a *jwtAuthenticator) IssueAccess(_ context.Context, userID int64) (string, error) {
	return a.sign(userID, domain.TokenKindAccess, a.accessTTL)
}

func (a *jwtAuthenticator) sign(userID int64, kind domain.TokenKind, ttl time.Duration) (string, error) {
	now := a.now()
	_, admin := a.admins[userID]
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:    kind,
		IsAdmin: admin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (a *jwtAuthenticator) Validate(ctx context.Context, token string, kind domain.TokenKind) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != kind {
		return nil, fmt.Errorf("%w: expected %s token", domain.ErrInvalidToken, kind)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}

	revoked, err := a.blocklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check blocklist: %w", err)
	}
	if revoked {
		return nil, domain.ErrRevokedToken
	}

	return &domain.Identity{
		UserID:    userID,
		IsAdmin:   claims.IsAdmin,
		TokenID:   claims.ID,
		Kind:      claims.Type,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (a *jwtAuthenticator) Revoke(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.TokenID == "" {
		return domain.ErrInvalidToken
	}
	return a.blocklist.Add(ctx, identity.TokenID, identity.ExpiresAt)
}
