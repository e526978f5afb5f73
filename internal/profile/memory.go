package profile

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tazhibayda/markpad/internal/domain"
)

// Memory is an in-process Repository for local runs without MongoDB and for tests.
type Memory struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]domain.UserProfile
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Memory{now: now, items: map[string]domain.UserProfile{}}
}

func (m *Memory) UpsertProfile(_ context.Context, id domain.Identity) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p, ok := m.items[id.ID]
	if !ok {
		p = domain.UserProfile{ID: id.ID, CreatedAt: now}
	}
	p.Email, p.DisplayName, p.PhotoURL = copyStr(id.Email), copyStr(id.DisplayName), copyStr(id.PhotoURL)
	p.LastLogin = now
	m.items[id.ID] = p
	return !ok, nil
}

func (m *Memory) FindProfileByID(_ context.Context, id string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p = clone(p)
	return &p, nil
}

func (m *Memory) ListProfiles(_ context.Context) ([]domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.UserProfile, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, clone(p))
	}
	return out, nil
}

func (m *Memory) FindProfileByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	all, _ := m.ListProfiles(ctx)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	for _, p := range all {
		if p.Email != nil && *p.Email == email {
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

// clone detaches p from the stored record; callers may modify what they get.
func clone(p domain.UserProfile) domain.UserProfile {
	p.Email, p.DisplayName, p.PhotoURL = copyStr(p.Email), copyStr(p.DisplayName), copyStr(p.PhotoURL)
	return p
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
