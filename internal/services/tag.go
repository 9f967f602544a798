package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventrsvp/internal/domain"
)

const maxTagNameLen = 64

type tagService struct {
	tagRepo   domain.TagRepository
	eventRepo domain.EventRepository
}

// NewTagService creates a TagService with the given repositories.
func NewTagService(tagRepo domain.TagRepository, eventRepo domain.EventRepository) domain.TagService {
	return &tagService{tagRepo: tagRepo, eventRepo: eventRepo}
}

func (s *tagService) ensureEvent(ctx context.Context, eventID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}

// AddTagToEvent finds or creates the tag by name and links it to the event.
func (s *tagService) AddTagToEvent(ctx context.Context, eventID int64, name string) (*domain.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}
	if len(name) > maxTagNameLen {
		return nil, fmt.Errorf("%w: tag name must be at most %d characters", domain.ErrInvalidInput, maxTagNameLen)
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.EnsureTagForEvent(ctx, eventID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ensure tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) LinkTag(ctx context.Context, eventID, tagID int64) (*domain.Tag, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	tag, err := s.GetTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.LinkEvent(ctx, eventID, tagID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("link tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) UnlinkTag(ctx context.Context, eventID, tagID int64) error {
	if err := s.tagRepo.UnlinkEvent(ctx, eventID, tagID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("unlink tag: %w", err)
	}
	return nil
}

func (s *tagService) ListEventTags(ctx context.Context, eventID int64) ([]*domain.Tag, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

func (s *tagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.GetTag(ctx, id); err != nil {
		return err
	}
	n, err := s.tagRepo.CountEvents(ctx, id)
	if err != nil {
		return fmt.Errorf("count tag events: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: tag is still linked to %d event(s)", domain.ErrInvalidInput, n)
	}
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
