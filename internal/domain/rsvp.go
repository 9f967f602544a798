package domain

import (
	"context"
	"time"
)

// RSVPStatus is a user's answer to an event invitation.
type RSVPStatus string

const (
	RSVPStatusYes   RSVPStatus = "yes"
	RSVPStatusNo    RSVPStatus = "no"
	RSVPStatusMaybe RSVPStatus = "maybe"
)

// Valid reports whether s is one of the known statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusYes, RSVPStatusNo, RSVPStatusMaybe:
		return true
	}
	return false
}

// RSVP is a user's response to an event. There is at most one per (event, user).
// swagger:model RSVP
type RSVP struct {
	ID        int64      `json:"id"`
	EventID   int64      `json:"event_id"`
	UserID    int64      `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewRSVP returns a new RSVP. ID is set by the repository on create.
func NewRSVP(eventID, userID int64, status RSVPStatus, createdAt, updatedAt time.Time) *RSVP {
	return &RSVP{
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RSVPRepository defines storage for RSVPs. Create and UpdateStatus run in their
// own transaction; a unique (event_id, user_id) violation surfaces as ErrConflict.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	GetByID(ctx context.Context, id int64) (*RSVP, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*RSVP, error)
	UpdateStatus(ctx context.Context, id int64, status RSVPStatus, updatedAt time.Time) (*RSVP, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*RSVP, error)
	ListByUserID(ctx context.Context, userID int64) ([]*RSVP, error)
}

// RSVPService holds the RSVP business rules.
type RSVPService interface {
	// Create records the user's answer for the event. Returns ErrNotFound when the
	// event does not exist and ErrConflict when the user already answered.
	Create(ctx context.Context, eventID int64, status RSVPStatus, userID int64) (*RSVP, error)
	// Update changes the status of the caller's RSVP. A nil status leaves it unchanged.
	// Returns ErrNotFound for an unknown id and ErrForbidden when the caller is not the owner.
	Update(ctx context.Context, rsvpID int64, status *RSVPStatus, userID int64) (*RSVP, error)
	GetByID(ctx context.Context, rsvpID int64) (*RSVP, error)
	ListForEvent(ctx context.Context, eventID int64) ([]*RSVP, error)
	ListForUser(ctx context.Context, userID int64) ([]*RSVP, error)
}
