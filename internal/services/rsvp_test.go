package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

func newTestRSVPService(events ...*domain.Event) (*rsvpService, *fakeRSVPRepo, *fakeEventRepo) {
	rsvps := newFakeRSVPRepo()
	evs := newFakeEventRepo(events...)
	svc := NewRSVPService(rsvps, evs).(*rsvpService)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, rsvps, evs
}

func statusPtr(s domain.RSVPStatus) *domain.RSVPStatus { return &s }

func TestRSVPService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3, Name: "Meetup"})
		got, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, int64(3), got.EventID)
		assert.Equal(t, int64(7), got.UserID)
		assert.Equal(t, domain.RSVPStatusYes, got.Status)
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		assert.Equal(t, 1, repo.createCalls)
	})

	t.Run("duplicate returns conflict without writing", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3})
		_, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.NoError(t, err)

		_, err = svc.Create(ctx, 3, domain.RSVPStatusNo, 7)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, 1, repo.createCalls)
		all, _ := repo.ListByEventID(ctx, 3)
		require.Len(t, all, 1)
		assert.Equal(t, domain.RSVPStatusYes, all[0].Status)
	})

	t.Run("concurrent duplicate caught by unique key", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3})
		_, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.NoError(t, err)
		repo.skipLookup = true

		_, err = svc.Create(ctx, 3, domain.RSVPStatusMaybe, 7)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("different users may rsvp to the same event", func(t *testing.T) {
		svc, _, _ := newTestRSVPService(&domain.Event{ID: 3})
		_, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.NoError(t, err)
		_, err = svc.Create(ctx, 3, domain.RSVPStatusNo, 8)
		require.NoError(t, err)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService()
		_, err := svc.Create(ctx, 99, domain.RSVPStatusYes, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3})
		_, err := svc.Create(ctx, 3, "perhaps", 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("persistence failure is wrapped", func(t *testing.T) {
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3})
		dbErr := errors.New("connection reset")
		repo.createErr = dbErr
		_, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("event lookup failure", func(t *testing.T) {
		svc, _, events := newTestRSVPService(&domain.Event{ID: 3})
		events.getErr = errors.New("timeout")
		_, err := svc.Create(ctx, 3, domain.RSVPStatusYes, 7)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRSVPService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*rsvpService, *fakeRSVPRepo) {
		t.Helper()
		svc, repo, _ := newTestRSVPService(&domain.Event{ID: 3})
		_, err := svc.Create(ctx, 3, domain.RSVPStatusMaybe, 7)
		require.NoError(t, err)
		return svc, repo
	}

	tests := []struct {
		name        string
		rsvpID      int64
		status      *domain.RSVPStatus
		userID      int64
		wantErr     error
		wantStatus  domain.RSVPStatus
		wantUpdates int
	}{
		{name: "owner changes status", rsvpID: 1, status: statusPtr(domain.RSVPStatusNo), userID: 7, wantStatus: domain.RSVPStatusNo, wantUpdates: 1},
		{name: "absent status leaves rsvp unchanged", rsvpID: 1, status: nil, userID: 7, wantStatus: domain.RSVPStatusMaybe},
		{name: "same status is a no-op", rsvpID: 1, status: statusPtr(domain.RSVPStatusMaybe), userID: 7, wantStatus: domain.RSVPStatusMaybe},
		{name: "unknown rsvp", rsvpID: 42, status: statusPtr(domain.RSVPStatusYes), userID: 7, wantErr: domain.ErrNotFound},
		{name: "not the owner", rsvpID: 1, status: statusPtr(domain.RSVPStatusYes), userID: 8, wantErr: domain.ErrForbidden},
		{name: "invalid status", rsvpID: 1, status: statusPtr("sure"), userID: 7, wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := seed(t)
			got, err := svc.Update(ctx, tt.rsvpID, tt.status, tt.userID)
			assert.Equal(t, tt.wantUpdates, repo.updateCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, _ := repo.GetByID(ctx, 1)
				assert.Equal(t, domain.RSVPStatusMaybe, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, int64(7), got.UserID)
		})
	}

	t.Run("persistence failure is wrapped", func(t *testing.T) {
		svc, repo := seed(t)
		dbErr := errors.New("deadlock")
		repo.updateErr = dbErr
		_, err := svc.Update(ctx, 1, statusPtr(domain.RSVPStatusYes), 7)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("updated_at advances", func(t *testing.T) {
		svc, _ := seed(t)
		later := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return later }
		got, err := svc.Update(ctx, 1, statusPtr(domain.RSVPStatusYes), 7)
		require.NoError(t, err)
		assert.Equal(t, later, got.UpdatedAt)
		assert.True(t, got.CreatedAt.Before(got.UpdatedAt))
	})
}

func TestRSVPService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestRSVPService(&domain.Event{ID: 1}, &domain.Event{ID: 2})
	for _, in := range []struct{ event, user int64 }{{1, 10}, {1, 11}, {2, 10}} {
		_, err := svc.Create(ctx, in.event, domain.RSVPStatusYes, in.user)
		require.NoError(t, err)
	}

	byEvent, err := svc.ListForEvent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	byUser, err := svc.ListForUser(ctx, 10)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, int64(1), byUser[0].EventID)
	assert.Equal(t, int64(2), byUser[1].EventID)

	_, err = svc.ListForEvent(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.UserID)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
