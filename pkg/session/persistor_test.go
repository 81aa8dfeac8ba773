package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobby152/askelio-sub003/pkg/session"
)

func futureSession(offset time.Duration) *session.Session {
	return &session.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(offset).Unix(),
		User:         &session.UserSnapshot{ID: "u1", Email: "user@askelio.test"},
	}
}

func TestPersistorRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("get after set returns equal record", func(t *testing.T) {
		p := session.NewPersistor()
		want := futureSession(time.Hour)

		p.SetSession(ctx, want)
		got := p.GetSession(ctx)
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	})

	t.Run("get without set returns nil", func(t *testing.T) {
		p := session.NewPersistor()
		assert.Nil(t, p.GetSession(ctx))
	})

	t.Run("set replaces wholesale", func(t *testing.T) {
		p := session.NewPersistor()

		p.SetSession(ctx, futureSession(time.Hour))
		replacement := futureSession(2 * time.Hour)
		replacement.User = nil
		p.SetSession(ctx, replacement)

		got := p.GetSession(ctx)
		require.NotNil(t, got)
		assert.Nil(t, got.User)
		assert.Equal(t, replacement.ExpiresAt, got.ExpiresAt)
	})
}

func TestPersistorExpiredSelfClean(t *testing.T) {
	ctx := context.Background()

	ephemeral := session.NewMemoryStore()
	durable := session.NewMemoryStore()
	p := session.NewPersistor(
		session.WithEphemeralStore(ephemeral),
		session.WithDurableStore(durable),
	)

	expired := futureSession(-time.Minute)
	p.SetSession(ctx, expired)

	assert.Nil(t, p.GetSession(ctx))

	// Both copies are gone after the self-cleaning read.
	_, err := ephemeral.Get(ctx, "askelio.session.default")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
	_, err = durable.Get(ctx, "askelio.session.default")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}

func TestPersistorClearSession(t *testing.T) {
	ctx := context.Background()

	t.Run("ephemeral mode", func(t *testing.T) {
		p := session.NewPersistor()
		p.SetSession(ctx, futureSession(time.Hour))

		p.ClearSession(ctx)
		assert.Nil(t, p.GetSession(ctx))
	})

	t.Run("durable mode", func(t *testing.T) {
		p := session.NewPersistor(
			session.WithDurableStore(session.NewMemoryStore()),
		)
		p.SetSession(ctx, futureSession(time.Hour))

		p.ClearSession(ctx)
		assert.Nil(t, p.GetSession(ctx))
	})

	t.Run("removes legacy unnamespaced keys", func(t *testing.T) {
		ephemeral := session.NewMemoryStore()
		p := session.NewPersistor(session.WithEphemeralStore(ephemeral))

		for _, legacy := range []string{"access_token", "refresh_token", "token_expires_at", "askelio_user"} {
			require.NoError(t, ephemeral.Set(ctx, legacy, []byte("stale")))
		}

		p.ClearSession(ctx)
		assert.Zero(t, ephemeral.Len())
	})

	t.Run("one failing backend does not block the others", func(t *testing.T) {
		ephemeral := session.NewMemoryStore()
		durable := &faultStore{inner: session.NewMemoryStore(), failDelete: true}
		p := session.NewPersistor(
			session.WithEphemeralStore(ephemeral),
			session.WithDurableStore(durable),
			session.WithMode(session.ModeDurable),
		)
		p.SetSession(ctx, futureSession(time.Hour))

		p.ClearSession(ctx)

		_, err := ephemeral.Get(ctx, "askelio.session.default")
		assert.ErrorIs(t, err, session.ErrKeyNotFound)
	})
}

func TestPersistorDurableMode(t *testing.T) {
	ctx := context.Background()

	t.Run("writes both backends", func(t *testing.T) {
		ephemeral := session.NewMemoryStore()
		durable := session.NewMemoryStore()
		p := session.NewPersistor(
			session.WithEphemeralStore(ephemeral),
			session.WithDurableStore(durable),
		)

		p.SetSession(ctx, futureSession(time.Hour))

		_, err := ephemeral.Get(ctx, "askelio.session.default")
		assert.NoError(t, err)
		_, err = durable.Get(ctx, "askelio.session.default")
		assert.NoError(t, err)
	})

	t.Run("falls back to durable copy on read", func(t *testing.T) {
		ephemeral := session.NewMemoryStore()
		durable := session.NewMemoryStore()
		p := session.NewPersistor(
			session.WithEphemeralStore(ephemeral),
			session.WithDurableStore(durable),
		)

		want := futureSession(time.Hour)
		p.SetSession(ctx, want)

		// Simulate a fresh browsing context: the ephemeral copy is gone.
		require.NoError(t, ephemeral.Delete(ctx, "askelio.session.default"))

		got := p.GetSession(ctx)
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	})

	t.Run("durable write failure degrades silently", func(t *testing.T) {
		durable := &faultStore{inner: session.NewMemoryStore(), failSet: true}
		p := session.NewPersistor(
			session.WithDurableStore(durable),
			session.WithMode(session.ModeDurable),
		)

		want := futureSession(time.Hour)
		p.SetSession(ctx, want) // must not panic or surface an error

		got := p.GetSession(ctx)
		require.NotNil(t, got)
		assert.Equal(t, want.AccessToken, got.AccessToken)
	})

	t.Run("ephemeral mode never touches durable backend", func(t *testing.T) {
		durable := &faultStore{inner: session.NewMemoryStore()}
		p := session.NewPersistor(
			session.WithDurableStore(durable),
			session.WithMode(session.ModeEphemeral),
		)

		p.SetSession(ctx, futureSession(time.Hour))
		require.NotNil(t, p.GetSession(ctx))
		assert.Zero(t, durable.setCalls)
	})
}

func TestPersistorNamespaceIsolation(t *testing.T) {
	ctx := context.Background()

	shared := session.NewMemoryStore()
	first := session.NewPersistor(
		session.WithEphemeralStore(shared),
		session.WithNamespace("tab-1"),
	)
	second := session.NewPersistor(
		session.WithEphemeralStore(shared),
		session.WithNamespace("tab-2"),
	)

	first.SetSession(ctx, futureSession(time.Hour))

	assert.NotNil(t, first.GetSession(ctx))
	assert.Nil(t, second.GetSession(ctx))
	assert.NotEqual(t, first.InstanceID(), second.InstanceID())
}

func TestPersistorModeMemoized(t *testing.T) {
	ctx := context.Background()

	durable := &faultStore{inner: session.NewMemoryStore()}
	p := session.NewPersistor(session.WithDurableStore(durable))

	require.Equal(t, session.ModeDurable, p.Mode(ctx))
	probeWrites := durable.setCalls

	// Backend breaks after the first probe; the cached decision stands.
	durable.failSet = true
	assert.Equal(t, session.ModeDurable, p.Mode(ctx))
	assert.Equal(t, probeWrites, durable.setCalls)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	cfg := session.Config{Namespace: "cfg-ns", Dir: t.TempDir()}
	p := session.NewFromConfig(cfg)

	assert.Equal(t, "cfg-ns", p.Namespace())
	assert.Equal(t, session.ModeDurable, p.Mode(ctx))

	want := futureSession(time.Hour)
	p.SetSession(ctx, want)
	got := p.GetSession(ctx)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}
