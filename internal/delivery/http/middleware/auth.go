package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context carrying the authenticated identity.
func SetIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity set by RequireAuth or RequireRefresh.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// RequireAuth validates a Bearer access token and puts its identity in the request context.
// On failure it responds with 401 and does not call next.
func RequireAuth(auth domain.Authenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return requireToken(auth, domain.TokenKindAccess, logger)
}

// RequireRefresh is RequireAuth for refresh tokens.
func RequireRefresh(auth domain.Authenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return requireToken(auth, domain.TokenKindRefresh, logger)
}

func requireToken(auth domain.Authenticator, kind domain.TokenKind, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeAuthorizationRequired, "Request does not contain an access token.")
				return
			}
			identity, err := auth.Validate(r.Context(), token, kind)
			if err != nil {
				writeAuthError(w, r, logger, err)
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), identity))
			next(w, r)
		}
	}
}

// RequireAdmin must run inside RequireAuth. Non-admin identities get 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeAuthorizationRequired, "Request does not contain an access token.")
			return
		}
		if !id.IsAdmin {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeAdminRequired, "Admin privilege required.")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrRevokedToken):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeTokenRevoked, "The token has been revoked.")
	case errors.Is(err, domain.ErrExpiredToken):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeExpiredToken, "The token has expired.")
	case errors.Is(err, domain.ErrMissingToken):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeAuthorizationRequired, "Request does not contain an access token.")
	case errors.Is(err, domain.ErrInvalidToken):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeInvalidToken, "Signature verification failed.")
	default:
		// revocation store unreachable; fail closed
		logger.ErrorContext(r.Context(), "token validation failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Internal server error.")
	}
}
