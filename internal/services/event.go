package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventrsvp/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	tagRepo   domain.TagRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, tagRepo domain.TagRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, tagRepo: tagRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	if event.Tags == nil {
		event.Tags = []*domain.Tag{}
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	tags, err := s.tagRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list event tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	event.Tags = tags
	return event, nil
}

// ListEvents returns a page of events without their tags.
func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// DeleteEvent removes the event; its RSVPs and tag links go with it via ON DELETE CASCADE.
func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
