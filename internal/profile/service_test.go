package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazhibayda/markpad/internal/domain"
	"github.com/tazhibayda/markpad/internal/profile"
	"github.com/tazhibayda/markpad/internal/queue"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type published struct {
	key   string
	event queue.ProfileSignedIn
}

type recordingPub struct {
	got []published
	err error
}

func (p *recordingPub) Publish(_ context.Context, key string, event any, _ string) error {
	p.got = append(p.got, published{key: key, event: event.(queue.ProfileSignedIn)})
	return p.err
}
func (p *recordingPub) Close() error { return nil }

type failingRepo struct{ profile.Repository }

func (failingRepo) UpsertProfile(context.Context, domain.Identity) (bool, error) {
	return false, errors.New("connection refused")
}

func TestUpsert_FirstSignInThenAgain(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := &fakeClock{t: t0}
	svc := profile.NewService(profile.NewMemory(clock.Now), nil)

	require.NoError(t, svc.Upsert(ctx, domain.Identity{
		ID: "u1", Email: domain.Str("a@b.com"), DisplayName: domain.Str("Ann"),
	}, "req-1"))

	p, err := svc.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{
		ID: "u1", Email: domain.Str("a@b.com"), DisplayName: domain.Str("Ann"),
		CreatedAt: t0, LastLogin: t0,
	}, *p)

	t1 := t0.Add(time.Hour)
	clock.t = t1
	require.NoError(t, svc.Upsert(ctx, domain.Identity{
		ID: "u1", Email: domain.Str("a@b.com"), DisplayName: domain.Str("Annie"),
	}, "req-2"))

	p, err = svc.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, t0, p.CreatedAt)
	assert.Equal(t, t1, p.LastLogin)
	assert.Equal(t, "Annie", domain.Deref(p.DisplayName))
}

func TestUpsert_EmptyIDIsNoop(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPub{}
	svc := profile.NewService(profile.NewMemory(nil), pub)

	require.NoError(t, svc.Upsert(ctx, domain.Identity{Email: domain.Str("a@b.com")}, ""))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, pub.got)
}

func TestUpsert_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPub{}
	svc := profile.NewService(profile.NewMemory(nil), pub)

	require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: "u1", Email: domain.Str("a@b.com")}, "r"))
	require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: "u1"}, "r"))

	require.Len(t, pub.got, 3)
	assert.Equal(t, queue.KeyProfileCreated, pub.got[0].key)
	assert.Equal(t, queue.KeyProfileSignedIn, pub.got[1].key)
	assert.True(t, pub.got[1].event.Created)
	assert.NotEmpty(t, pub.got[1].event.EmailHash)
	assert.NotContains(t, pub.got[1].event.EmailHash, "@")
	assert.Equal(t, queue.KeyProfileSignedIn, pub.got[2].key)
	assert.False(t, pub.got[2].event.Created)
}

func TestUpsert_PublishFailureDoesNotFail(t *testing.T) {
	pub := &recordingPub{err: errors.New("broker down")}
	svc := profile.NewService(profile.NewMemory(nil), pub)
	assert.NoError(t, svc.Upsert(context.Background(), domain.Identity{ID: "u1"}, "r"))
}

func TestUpsert_RepositoryErrorPropagates(t *testing.T) {
	svc := profile.NewService(failingRepo{}, nil)
	err := svc.Upsert(context.Background(), domain.Identity{ID: "u1"}, "r")
	assert.Error(t, err)
}

func TestGetByEmail(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := profile.NewService(profile.NewMemory(clock.Now), nil)

	_, err := svc.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: "first", Email: domain.Str("dup@x.com")}, ""))
	clock.t = clock.t.Add(time.Minute)
	require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: "second", Email: domain.Str("dup@x.com")}, ""))
	require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: "other", Email: domain.Str("x@x.com")}, ""))

	p, err := svc.GetByEmail(ctx, "x@x.com")
	require.NoError(t, err)
	assert.Equal(t, "other", p.ID)

	p, err = svc.GetByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, "first", p.ID, "oldest profile wins on duplicate emails")

	_, err = svc.GetByEmail(ctx, "X@X.COM")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetAll_DistinctIdentities(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewService(profile.NewMemory(nil), nil)
	for _, id := range []string{"a", "b", "a", "c"} {
		require.NoError(t, svc.Upsert(ctx, domain.Identity{ID: id}, ""))
	}
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemory_ReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	m := profile.NewMemory(nil)
	_, err := m.UpsertProfile(ctx, domain.Identity{ID: "u1", Email: domain.Str("a@b.com"), DisplayName: domain.Str("Ann")})
	require.NoError(t, err)

	p, err := m.FindProfileByID(ctx, "u1")
	require.NoError(t, err)
	*p.Email = "evil@x.com"

	byEmail, err := m.FindProfileByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	*byEmail.DisplayName = "Mallory"

	all, err := m.ListProfiles(ctx)
	require.NoError(t, err)
	*all[0].Email = "other@x.com"

	p, err = m.FindProfileByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", domain.Deref(p.Email))
	assert.Equal(t, "Ann", domain.Deref(p.DisplayName))
}
