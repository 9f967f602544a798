package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// CreateRSVPRequest is the request body for POST /rsvp/{event_id}.
type CreateRSVPRequest struct {
	Status domain.RSVPStatus `json:"status" validate:"required,oneof=yes no maybe" enums:"yes,no,maybe"`
}

// UpdateRSVPRequest is the request body for PUT /rsvp/{rsvp_id}. Omitting status leaves the RSVP unchanged.
type UpdateRSVPRequest struct {
	Status *domain.RSVPStatus `json:"status,omitempty" validate:"omitempty,oneof=yes no maybe" enums:"yes,no,maybe"`
}

// RSVPController handles RSVP endpoints.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

// NewRSVPController creates an RSVPController with the given logger and service.
func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary RSVP to an event
// @Description Records the caller's answer for the event. A user can RSVP to an event only once; use PUT to change the answer.
// @Tags rsvp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Param body body CreateRSVPRequest true "RSVP status"
// @Success 201 {object} domain.RSVP
// @Failure 400 {object} helpers.ErrorResponse "error: conflict when the user already RSVP'd, validation_error for a bad status"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /rsvp/{event_id} [post]
func (c *RSVPController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	var req CreateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.Create(r.Context(), eventID, req.Status, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeConflict, "You have already RSVP'd to this event.")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidation, err.Error())
		default:
			writeInternalError(c.Logger, w, r, err, "An error occurred while creating the RSVP.")
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, rsvp)
}

// Update godoc
// @Summary Change an RSVP
// @Description Updates the status of the caller's own RSVP. Without a status the RSVP is returned unchanged.
// @Tags rsvp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rsvp_id path int true "RSVP ID"
// @Param body body UpdateRSVPRequest false "New status"
// @Success 200 {object} domain.RSVP
// @Failure 400 {object} helpers.ErrorResponse "error: validation_error"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "error: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /rsvp/{rsvp_id} [put]
func (c *RSVPController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	rsvpID, ok := helpers.PathID(w, r, "rsvp_id")
	if !ok {
		return
	}
	var req UpdateRSVPRequest
	if !helpers.DecodeOptionalAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.Update(r.Context(), rsvpID, req.Status, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "RSVP not found.")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "You can only update your own RSVP.")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidation, err.Error())
		default:
			writeInternalError(c.Logger, w, r, err, "An error occurred while updating the RSVP.")
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rsvp)
}

// Get godoc
// @Summary Get an RSVP
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Param rsvp_id path int true "RSVP ID"
// @Success 200 {object} domain.RSVP
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /rsvp/{rsvp_id} [get]
func (c *RSVPController) Get(w http.ResponseWriter, r *http.Request) {
	rsvpID, ok := helpers.PathID(w, r, "rsvp_id")
	if !ok {
		return
	}
	rsvp, err := c.Service.GetByID(r.Context(), rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "RSVP not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rsvp)
}

// ListForEvent godoc
// @Summary List RSVPs for an event
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 200 {array} domain.RSVP
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /event/{event_id}/rsvp [get]
func (c *RSVPController) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	rsvps, err := c.Service.ListForEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rsvps)
}

// ListMine godoc
// @Summary List the caller's RSVPs
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.RSVP
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /rsvp [get]
func (c *RSVPController) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	rsvps, err := c.Service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rsvps)
}
