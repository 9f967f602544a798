package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// newRequest builds a request with optional JSON body, path values and identity.
func newRequest(method, target, body string, identity *domain.Identity, pathValues ...string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+target, rdr)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if identity != nil {
		req = req.WithContext(middleware.SetIdentity(req.Context(), identity))
	}
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) helpers.ErrorResponse {
	t.Helper()
	var body helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	require.Equal(t, status, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, code, body.Error)
	if message != "" {
		assert.Equal(t, message, body.Message)
	}
}
