package session

import (
	"context"
	"time"

	"github.com/tazhibayda/markpad/internal/domain"
)

// Session binds a browser (or API client) to a signed-in identity.
type Session struct {
	ID        string          `json:"id"`
	Identity  domain.Identity `json:"identity"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store keeps session records. Get returns nil, nil for unknown ids.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
