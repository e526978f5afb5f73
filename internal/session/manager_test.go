package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazhibayda/markpad/internal/domain"
	"github.com/tazhibayda/markpad/internal/security"
	"github.com/tazhibayda/markpad/internal/session"
)

func newManager(t *testing.T) (*session.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return session.NewManager(session.NewRedisStore(rc), "s3cret", time.Hour), mr
}

func TestManager_CreateResolveDestroy(t *testing.T) {
	m, mr := newManager(t)
	ctx := context.Background()
	id := domain.Identity{ID: "u1", Email: domain.Str("a@b.com"), DisplayName: domain.Str("Ann")}

	tok, s, err := m.Create(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.True(t, mr.Exists("session:"+s.ID))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("session:"+s.ID).Seconds(), 5)

	got, err := m.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got.Identity)

	require.NoError(t, m.Destroy(ctx, tok))
	_, err = m.Resolve(ctx, tok)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestManager_ResolveRejectsBadTokens(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.Resolve(ctx, "")
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = m.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, session.ErrNoSession)

	// well signed, but no record behind it
	forged, _ := security.MakeSessionToken("s3cret", "sid-x", "u1", "", time.Hour)
	_, err = m.Resolve(ctx, forged)
	assert.ErrorIs(t, err, session.ErrNoSession)

	tok, _, err := m.Create(ctx, domain.Identity{ID: "u1"})
	require.NoError(t, err)
	other := session.NewManager(nil, "different", time.Hour)
	_, err = other.Resolve(ctx, tok)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestManager_ExpiredRecordIsGone(t *testing.T) {
	m, mr := newManager(t)
	ctx := context.Background()

	tok, _, err := m.Create(ctx, domain.Identity{ID: "u1"})
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, err = m.Resolve(ctx, tok)
	assert.Error(t, err)
}

func TestManager_DestroyUnknownToken(t *testing.T) {
	m, _ := newManager(t)
	assert.NoError(t, m.Destroy(context.Background(), "garbage"))
}

func TestRedisStore_CreateValidates(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()
	st := session.NewRedisStore(rc)
	ctx := context.Background()

	assert.Error(t, st.Create(ctx, session.Session{ID: "x"}))
	assert.Error(t, st.Create(ctx, session.Session{
		ID: "x", Identity: domain.Identity{ID: "u"}, ExpiresAt: time.Now().Add(-time.Second),
	}))

	s, err := st.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, s)
}
