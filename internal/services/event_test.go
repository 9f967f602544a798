package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("trims name and assigns id", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, newFakeTagRepo())
		e := &domain.Event{Name: "  Go Night  "}
		require.NoError(t, svc.CreateEvent(ctx, e))
		assert.Equal(t, int64(1), e.ID)
		assert.Equal(t, "Go Night", e.Name)
		assert.NotNil(t, e.Tags)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeTagRepo())
		err := svc.CreateEvent(ctx, &domain.Event{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("repository error wrapped", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.createErr = errors.New("disk full")
		svc := NewEventService(repo, newFakeTagRepo())
		err := svc.CreateEvent(ctx, &domain.Event{Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create event")
	})
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo(&domain.Event{ID: 5, Name: "Conf"})
	tags := newFakeTagRepo()
	svc := NewEventService(events, tags)

	_, err := tags.EnsureTagForEvent(ctx, 5, "go")
	require.NoError(t, err)

	got, err := svc.GetEvent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "go", got.Tags[0].Name)

	_, err = svc.GetEvent(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tags.err = errors.New("boom")
	_, err = svc.GetEvent(ctx, 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_GetEvent_NoTags(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(&domain.Event{ID: 1, Name: "a"}), newFakeTagRepo())
	got, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo(&domain.Event{ID: 1}, &domain.Event{ID: 2}, &domain.Event{ID: 3})
	svc := NewEventService(repo, newFakeTagRepo())

	page, total, err := svc.ListEvents(ctx, domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	page, _, err = svc.ListEvents(ctx, domain.PaginationParams{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(&domain.Event{ID: 1}), newFakeTagRepo())
	require.NoError(t, svc.DeleteEvent(ctx, 1))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, 1), domain.ErrNotFound)
}
