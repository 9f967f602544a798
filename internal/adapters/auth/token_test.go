package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/adapters/blocklist"
	"eventrsvp/internal/domain"
)

const testSecret = "test-secret"

func newTestAuthenticator(t *testing.T) (*jwtAuthenticator, domain.Blocklist) {
	t.Helper()
	bl := blocklist.NewMemory()
	a := NewJWTAuthenticator(JWTConfig{
		Secret:       testSecret,
		AccessTTL:    15 * time.Minute,
		RefreshTTL:   24 * time.Hour,
		AdminUserIDs: []int64{1},
	}, bl)
	return a.(*jwtAuthenticator), bl
}

func TestJWTAuthenticator_Issue(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)

	pair, err := a.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	parsed, err := jwt.ParseWithClaims(pair.AccessToken, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, domain.TokenKindAccess, claims.Type)
	assert.False(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTAuthenticator_admin_claim(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)

	for userID, wantAdmin := range map[int64]bool{1: true, 2: false} {
		pair, err := a.Issue(ctx, userID)
		require.NoError(t, err)
		id, err := a.Validate(ctx, pair.AccessToken, domain.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, userID, id.UserID)
		assert.Equal(t, wantAdmin, id.IsAdmin, "user %d", userID)
	}
}

func TestJWTAuthenticator_unique_jti(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)

	pair, err := a.Issue(ctx, 7)
	require.NoError(t, err)
	access, err := a.Validate(ctx, pair.AccessToken, domain.TokenKindAccess)
	require.NoError(t, err)
	refresh, err := a.Validate(ctx, pair.RefreshToken, domain.TokenKindRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.TokenID, refresh.TokenID)
}

func TestJWTAuthenticator_Validate_errors(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	pair, err := a.Issue(ctx, 5)
	require.NoError(t, err)

	other := NewJWTAuthenticator(JWTConfig{Secret: "other", AccessTTL: time.Minute, RefreshTTL: time.Minute}, blocklist.NewMemory())
	foreign, err := other.IssueAccess(ctx, 5)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Subject:   "5",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Type: domain.TokenKindAccess,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		kind    domain.TokenKind
		wantErr error
	}{
		{"empty", "", domain.TokenKindAccess, domain.ErrMissingToken},
		{"garbage", "not-a-jwt", domain.TokenKindAccess, domain.ErrInvalidToken},
		{"wrong signature", foreign, domain.TokenKindAccess, domain.ErrInvalidToken},
		{"alg none", noneToken, domain.TokenKindAccess, domain.ErrInvalidToken},
		{"refresh used as access", pair.RefreshToken, domain.TokenKindAccess, domain.ErrInvalidToken},
		{"access used as refresh", pair.AccessToken, domain.TokenKindRefresh, domain.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Validate(ctx, tt.token, tt.kind)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJWTAuthenticator_Validate_expired(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	a.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := a.Issue(ctx, 3)
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.Validate(ctx, pair.AccessToken, domain.TokenKindAccess)
	require.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTAuthenticator_Revoke(t *testing.T) {
	ctx := context.Background()
	a, bl := newTestAuthenticator(t)
	pair, err := a.Issue(ctx, 9)
	require.NoError(t, err)

	id, err := a.Validate(ctx, pair.AccessToken, domain.TokenKindAccess)
	require.NoError(t, err)
	require.NoError(t, a.Revoke(ctx, id))

	revoked, err := bl.Contains(ctx, id.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = a.Validate(ctx, pair.AccessToken, domain.TokenKindAccess)
	require.ErrorIs(t, err, domain.ErrRevokedToken)

	// refresh token of the same pair has its own jti
	_, err = a.Validate(ctx, pair.RefreshToken, domain.TokenKindRefresh)
	require.NoError(t, err)

	require.ErrorIs(t, a.Revoke(ctx, nil), domain.ErrInvalidToken)
}

func TestJWTAuthenticator_bad_subject(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Type: domain.TokenKindAccess,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = a.Validate(ctx, tok, domain.TokenKindAccess)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
