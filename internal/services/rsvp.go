package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventrsvp/internal/domain"
)

var tracer = otel.Tracer("services")

type rsvpService struct {
	rsvpRepo  domain.RSVPRepository
	eventRepo domain.EventRepository
	now       func() time.Time
}

// NewRSVPService creates an RSVPService with the given repositories.
func NewRSVPService(rsvpRepo domain.RSVPRepository, eventRepo domain.EventRepository) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

func (s *rsvpService) Create(ctx context.Context, eventID int64, status domain.RSVPStatus, userID int64) (*domain.RSVP, error) {
	ctx, span := tracer.Start(ctx, "RSVPService.Create", trace.WithAttributes(
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of yes, no, maybe", domain.ErrInvalidInput)
	}

	// The foreign key would reject an orphan RSVP too; checking first gives a clear 404.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, recordErr(span, fmt.Errorf("get event: %w", err))
	}

	if _, err := s.rsvpRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, recordErr(span, fmt.Errorf("get rsvp: %w", err))
	}

	now := s.now()
	rsvp := domain.NewRSVP(eventID, userID, status, now, now)
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		// lost a race with a concurrent create; the unique key caught it
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, recordErr(span, fmt.Errorf("create rsvp: %w", err))
	}
	span.SetAttributes(attribute.Int64("rsvp.id", rsvp.ID))
	return rsvp, nil
}

func (s *rsvpService) Update(ctx context.Context, rsvpID int64, status *domain.RSVPStatus, userID int64) (*domain.RSVP, error) {
	ctx, span := tracer.Start(ctx, "RSVPService.Update", trace.WithAttributes(
		attribute.Int64("rsvp.id", rsvpID),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	rsvp, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, recordErr(span, fmt.Errorf("get rsvp: %w", err))
	}
	if rsvp.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if status == nil || *status == rsvp.Status {
		return rsvp, nil
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of yes, no, maybe", domain.ErrInvalidInput)
	}

	updated, err := s.rsvpRepo.UpdateStatus(ctx, rsvpID, *status, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, recordErr(span, fmt.Errorf("update rsvp: %w", err))
	}
	return updated, nil
}

func (s *rsvpService) GetByID(ctx context.Context, rsvpID int64) (*domain.RSVP, error) {
	rsvp, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	return rsvp, nil
}

func (s *rsvpService) ListForEvent(ctx context.Context, eventID int64) ([]*domain.RSVP, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	rsvps, err := s.rsvpRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

func (s *rsvpService) ListForUser(ctx context.Context, userID int64) ([]*domain.RSVP, error) {
	rsvps, err := s.rsvpRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
