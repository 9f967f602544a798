package domain

import (
	"context"
	"time"
)

// Event is something users can RSVP to.
// swagger:model Event
type Event struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Tags        []*Tag     `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, description *string, startsAt *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		StartsAt:    startsAt,
		Tags:        []*Tag{},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Delete(ctx context.Context, id int64) error
}

// EventService defines event CRUD.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	// GetEvent returns the event with its tags populated.
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	DeleteEvent(ctx context.Context, id int64) error
}
