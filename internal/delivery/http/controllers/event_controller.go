package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// CreateEventRequest is the request body for POST /event.
type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
}

// Validate implements helpers.Validator.
func (c CreateEventRequest) Validate() []string {
	if strings.TrimSpace(c.Name) == "" {
		return []string{"name cannot be blank"}
	}
	return nil
}

// EventController handles event endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.Page[domain.Event]
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /event [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.NewPage(events, params, total))
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse "error: validation_error"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /event [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now().UTC()
	event := domain.NewEvent(req.Name, req.Description, req.StartsAt, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidation, err.Error())
			return
		}
		writeInternalError(c.Logger, w, r, err, "An error occurred while creating the event.")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Get an event with its tags
// @Tags events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /event/{event_id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Admin only. RSVPs and tag links of the event are removed with it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "error: admin_required"
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /event/{event_id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
			return
		}
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Event deleted.")
}
