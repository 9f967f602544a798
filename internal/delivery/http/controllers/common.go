package controllers

import (
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// writeInternalError logs err and writes a 500 carrying message, never err itself.
func writeInternalError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, message)
}

// requireIdentity returns the identity set by the auth middleware or writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeAuthorizationRequired, "Request does not contain an access token.")
		return nil, false
	}
	return id, true
}
