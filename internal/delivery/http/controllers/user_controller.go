package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// UserController handles the user resource.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /user/{user_id} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "user_id")
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "User not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Admin only. The user's RSVPs are removed with them.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "error: admin_required"
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /user/{user_id} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "user_id")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "User not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "User deleted.")
}
