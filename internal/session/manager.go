// Package session implements the sign-in session: a signed token held by the
// client and a Redis record that makes sign-out effective immediately.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tazhibayda/markpad/internal/domain"
	"github.com/tazhibayda/markpad/internal/security"
)

var ErrNoSession = errors.New("no session")

type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{store: store, secret: secret, ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Create stores a new session for id and returns the token to hand to the client.
func (m *Manager) Create(ctx context.Context, id domain.Identity) (string, *Session, error) {
	sid, err := security.NewID()
	if err != nil {
		return "", nil, fmt.Errorf("session id: %w", err)
	}
	now := time.Now().UTC()
	s := Session{ID: sid, Identity: id, CreatedAt: now, ExpiresAt: now.Add(m.ttl)}
	if err := m.store.Create(ctx, s); err != nil {
		return "", nil, err
	}
	tok, err := security.MakeSessionToken(m.secret, sid, id.ID, domain.Deref(id.Email), m.ttl)
	if err != nil {
		_ = m.store.Delete(ctx, sid)
		return "", nil, fmt.Errorf("session token: %w", err)
	}
	return tok, &s, nil
}

// Resolve returns the live session behind token, or ErrNoSession when the
// token is invalid, expired or was signed out.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	c, err := security.ParseSessionToken(m.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}
	s, err := m.store.Get(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Identity.ID != c.UID {
		return nil, ErrNoSession
	}
	return s, nil
}

// Destroy signs the token out. Unknown or invalid tokens are not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	c, err := security.ParseSessionToken(m.secret, token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, c.ID)
}
