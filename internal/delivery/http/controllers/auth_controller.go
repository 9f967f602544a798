package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// CredentialsRequest is the request body for POST /register and POST /login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AccessTokenResponse is the response body for POST /refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthController handles registration and the token lifecycle.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Username and password"
// @Success 201 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "error: validation_error"
// @Failure 409 {object} helpers.ErrorResponse "error: conflict"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, err := c.Service.Register(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "A user with that username already exists.")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidation, err.Error())
		default:
			writeInternalError(c.Logger, w, r, err, "An error occurred while creating the user.")
		}
		return
	}
	helpers.WriteMessage(w, http.StatusCreated, "User created successfully.")
}

// Login godoc
// @Summary Log in
// @Description Returns a short-lived access token and a long-lived refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Username and password"
// @Success 200 {object} domain.TokenPair
// @Failure 400 {object} helpers.ErrorResponse "error: validation_error"
// @Failure 401 {object} helpers.ErrorResponse "error: invalid_credentials"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeInvalidCredentials, "Invalid credentials.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, pair)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Description The presented refresh token is revoked.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AccessTokenResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /refresh [post]
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	access, err := c.Service.Refresh(r.Context(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeInvalidToken, "Signature verification failed.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, AccessTokenResponse{AccessToken: access})
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if err := c.Service.Logout(r.Context(), identity); err != nil {
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Successfully logged out.")
}
