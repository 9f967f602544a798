package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventrsvp/internal/domain"
)

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Event
	nextID    int64
	getErr    error
	createErr error
	listErr   error
	deleteErr error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[int64]*domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
		if e.ID > f.nextID {
			f.nextID = e.ID
		}
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*domain.Event
	for i, id := range ids {
		if i < params.Offset() || len(out) >= params.Limit() {
			continue
		}
		out = append(out, f.byID[id])
	}
	return out, len(ids), nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRSVPRepo implements domain.RSVPRepository for tests. It enforces the
// (event_id, user_id) uniqueness the real table has.
type fakeRSVPRepo struct {
	mu          sync.Mutex
	byID        map[int64]*domain.RSVP
	nextID      int64
	createCalls int
	updateCalls int
	createErr   error
	updateErr   error
	getErr      error
	listErr     error
	// skipLookup makes GetByEventAndUser miss, simulating a concurrent insert.
	skipLookup bool
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[int64]*domain.RSVP)}
}

func (f *fakeRSVPRepo) Create(ctx context.Context, r *domain.RSVP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.EventID == r.EventID && existing.UserID == r.UserID {
			return domain.ErrConflict
		}
	}
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRSVPRepo) GetByID(ctx context.Context, id int64) (*domain.RSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRSVPRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.RSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.skipLookup {
		return nil, domain.ErrNotFound
	}
	for _, r := range f.byID {
		if r.EventID == eventID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) UpdateStatus(ctx context.Context, id int64, status domain.RSVPStatus, updatedAt time.Time) (*domain.RSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = updatedAt
	cp := *r
	return &cp, nil
}

func (f *fakeRSVPRepo) list(match func(*domain.RSVP) bool) ([]*domain.RSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.RSVP{}
	for _, r := range f.byID {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRSVPRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.RSVP, error) {
	return f.list(func(r *domain.RSVP) bool { return r.EventID == eventID })
}

func (f *fakeRSVPRepo) ListByUserID(ctx context.Context, userID int64) ([]*domain.RSVP, error) {
	return f.list(func(r *domain.RSVP) bool { return r.UserID == userID })
}

// fakeTagRepo implements domain.TagRepository for tests.
type fakeTagRepo struct {
	byID     map[int64]*domain.Tag
	links    map[int64]map[int64]bool // tagID -> eventIDs
	nextID   int64
	err      error
	countErr error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		byID:  make(map[int64]*domain.Tag),
		links: make(map[int64]map[int64]bool),
	}
}

func (f *fakeTagRepo) EnsureTagForEvent(ctx context.Context, eventID int64, name string) (*domain.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	var tag *domain.Tag
	for _, t := range f.byID {
		if t.Name == name {
			tag = t
		}
	}
	if tag == nil {
		f.nextID++
		tag = &domain.Tag{ID: f.nextID, Name: name}
		f.byID[tag.ID] = tag
	}
	if err := f.LinkEvent(ctx, eventID, tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

func (f *fakeTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTagRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Tag
	for tagID, events := range f.links {
		if events[eventID] {
			out = append(out, f.byID[tagID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTagRepo) LinkEvent(ctx context.Context, eventID, tagID int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[tagID]; !ok {
		return domain.ErrNotFound
	}
	if f.links[tagID] == nil {
		f.links[tagID] = make(map[int64]bool)
	}
	f.links[tagID][eventID] = true
	return nil
}

func (f *fakeTagRepo) UnlinkEvent(ctx context.Context, eventID, tagID int64) error {
	if f.err != nil {
		return f.err
	}
	if !f.links[tagID][eventID] {
		return domain.ErrNotFound
	}
	delete(f.links[tagID], eventID)
	return nil
}

func (f *fakeTagRepo) CountEvents(ctx context.Context, tagID int64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.links[tagID]), nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
