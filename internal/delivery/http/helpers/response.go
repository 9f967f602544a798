package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest            = "bad_request"
	ErrCodeValidation            = "validation_error"
	ErrCodeNotFound              = "not_found"
	ErrCodeConflict              = "conflict"
	ErrCodeForbidden             = "forbidden"
	ErrCodeAdminRequired         = "admin_required"
	ErrCodeInvalidCredentials    = "invalid_credentials"
	ErrCodeAuthorizationRequired = "authorization_required"
	ErrCodeInvalidToken          = "invalid_token"
	ErrCodeExpiredToken          = "expired_token"
	ErrCodeTokenRevoked          = "token_revoked"
	ErrCodeInternalError         = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// MessageResponse is a plain acknowledgement body.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes data as the body.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes an ErrorResponse with the given machine code and human message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Error: code})
}

// WriteMessage writes a MessageResponse.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}
