package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weatherlog/weatherlog-go/internal/model"
)

// MemoryStore is a concurrency-safe in-memory store with the same semantics as the
// MySQL repositories. It backs STORE=memory and the service tests.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[string]model.User
	locations    map[string]model.Location
	observations map[string][]model.Observation // key: location id, append order
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]model.User),
		locations:    make(map[string]model.Location),
		observations: make(map[string][]model.Observation),
	}
}

// Users returns the user view of the store.
func (s *MemoryStore) Users() *MemoryUsers { return &MemoryUsers{s} }

// Locations returns the location view of the store.
func (s *MemoryStore) Locations() *MemoryLocations { return &MemoryLocations{s} }

// Observations returns the observation view of the store.
func (s *MemoryStore) Observations() *MemoryObservations { return &MemoryObservations{s} }

type MemoryUsers struct{ s *MemoryStore }

func (m *MemoryUsers) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, u := range m.s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	m.s.users[user.ID] = cloneUser(*user)
	return nil
}

func (m *MemoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, u := range m.s.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (m *MemoryUsers) SetToken(_ context.Context, id string, token *string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	u, ok := m.s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.CurrentToken = nil
	if token != nil {
		t := *token
		u.CurrentToken = &t
	}
	u.UpdatedAt = time.Now().UTC()
	m.s.users[id] = u
	return nil
}

func cloneUser(u model.User) model.User {
	if u.CurrentToken != nil {
		t := *u.CurrentToken
		u.CurrentToken = &t
	}
	return u
}

type MemoryLocations struct{ s *MemoryStore }

func (m *MemoryLocations) Create(_ context.Context, loc *model.Location) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.locations[loc.ID] = *loc
	return nil
}

func (m *MemoryLocations) ListByOwner(_ context.Context, ownerID string) ([]model.Location, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.Location
	for _, l := range m.s.locations {
		if l.UserID == ownerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryLocations) GetByOwner(_ context.Context, ownerID, id string) (*model.Location, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	l, ok := m.s.locations[id]
	if !ok || l.UserID != ownerID {
		return nil, ErrLocationNotFound
	}
	return &l, nil
}

func (m *MemoryLocations) Update(_ context.Context, loc *model.Location) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	existing, ok := m.s.locations[loc.ID]
	if !ok || existing.UserID != loc.UserID {
		return ErrLocationNotFound
	}
	m.s.locations[loc.ID] = *loc
	return nil
}

func (m *MemoryLocations) Delete(_ context.Context, ownerID, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	l, ok := m.s.locations[id]
	if !ok || l.UserID != ownerID {
		return ErrLocationNotFound
	}
	delete(m.s.locations, id)
	delete(m.s.observations, id)
	return nil
}

type MemoryObservations struct{ s *MemoryStore }

func (m *MemoryObservations) Create(_ context.Context, obs *model.Observation) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	o := *obs
	o.RainFall = append(model.Rainfall(nil), obs.RainFall...)
	m.s.observations[obs.LocationID] = append(m.s.observations[obs.LocationID], o)
	return nil
}

func (m *MemoryObservations) ListByLocation(_ context.Context, locationID string, window *model.TimeRange) ([]model.Observation, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.Observation
	for _, o := range m.s.observations[locationID] {
		if window == nil || window.Contains(o.RecordedAt) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (m *MemoryObservations) DeleteByLocation(_ context.Context, locationID string, before *time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	history := m.s.observations[locationID]
	kept := history[:0]
	var removed int64
	for _, o := range history {
		if before == nil || o.RecordedAt.Before(*before) {
			removed++
			continue
		}
		kept = append(kept, o)
	}

	if len(kept) == 0 {
		delete(m.s.observations, locationID)
	} else {
		m.s.observations[locationID] = kept
	}
	return removed, nil
}
