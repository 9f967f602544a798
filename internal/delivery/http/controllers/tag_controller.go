package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// AddTagRequest is the request body for POST /event/{event_id}/tag.
type AddTagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// TagController handles tag endpoints.
type TagController struct {
	Logger  *slog.Logger
	Service domain.TagService
}

// NewTagController creates a TagController with the given logger and service.
func NewTagController(logger *slog.Logger, svc domain.TagService) *TagController {
	return &TagController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *TagController) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		writeInternalError(c.Logger, w, r, err, "Internal server error.")
	}
}

// ListForEvent godoc
// @Summary List the tags of an event
// @Tags tags
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} domain.Tag
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /event/{event_id}/tag [get]
func (c *TagController) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	tags, err := c.Service.ListEventTags(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, tags)
}

// Add godoc
// @Summary Tag an event by name
// @Description Reuses the tag when one with that name exists, otherwise creates it.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Param body body AddTagRequest true "Tag name"
// @Success 201 {object} domain.Tag
// @Failure 400 {object} helpers.ErrorResponse "error: validation_error"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /event/{event_id}/tag [post]
func (c *TagController) Add(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	var req AddTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Service.AddTagToEvent(r.Context(), eventID, req.Name)
	if err != nil {
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, tag)
}

// Link godoc
// @Summary Link an existing tag to an event
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} domain.Tag
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /event/{event_id}/tag/{tag_id} [post]
func (c *TagController) Link(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	tag, err := c.Service.LinkTag(r.Context(), eventID, tagID)
	if err != nil {
		c.writeError(w, r, err, "Event or tag not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, tag)
}

// Unlink godoc
// @Summary Remove a tag from an event
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /event/{event_id}/tag/{tag_id} [delete]
func (c *TagController) Unlink(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "event_id")
	if !ok {
		return
	}
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	if err := c.Service.UnlinkTag(r.Context(), eventID, tagID); err != nil {
		c.writeError(w, r, err, "Tag is not linked to this event.")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Tag removed from event.")
}

// Get godoc
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} domain.Tag
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /tag/{tag_id} [get]
func (c *TagController) Get(w http.ResponseWriter, r *http.Request) {
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	tag, err := c.Service.GetTag(r.Context(), tagID)
	if err != nil {
		c.writeError(w, r, err, "Tag not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, tag)
}

// Delete godoc
// @Summary Delete a tag
// @Description Only tags that are not linked to any event can be deleted.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "error: bad_request when still linked"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /tag/{tag_id} [delete]
func (c *TagController) Delete(w http.ResponseWriter, r *http.Request) {
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTag(r.Context(), tagID); err != nil {
		c.writeError(w, r, err, "Tag not found.")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Tag deleted.")
}
