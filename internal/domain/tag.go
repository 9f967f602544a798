package domain

import "context"

// Tag represents a named tag shared across events.
// swagger:model Tag
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags and event–tag links.
type TagRepository interface {
	// EnsureTagForEvent resolves a tag by name (creating it if missing), ensures the event has the tag in event_tags, and returns the tag.
	EnsureTagForEvent(ctx context.Context, eventID int64, tagName string) (*Tag, error)
	GetByID(ctx context.Context, id int64) (*Tag, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*Tag, error)
	LinkEvent(ctx context.Context, eventID, tagID int64) error
	UnlinkEvent(ctx context.Context, eventID, tagID int64) error
	CountEvents(ctx context.Context, tagID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// TagService defines tag operations scoped to events.
type TagService interface {
	AddTagToEvent(ctx context.Context, eventID int64, name string) (*Tag, error)
	LinkTag(ctx context.Context, eventID, tagID int64) (*Tag, error)
	UnlinkTag(ctx context.Context, eventID, tagID int64) error
	ListEventTags(ctx context.Context, eventID int64) ([]*Tag, error)
	GetTag(ctx context.Context, id int64) (*Tag, error)
	// DeleteTag removes a tag that is not linked to any event; otherwise ErrInvalidInput.
	DeleteTag(ctx context.Context, id int64) error
}
