package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dobby152/askelio-sub003/pkg/async"
	"github.com/dobby152/askelio-sub003/pkg/logger"
	"github.com/dobby152/askelio-sub003/pkg/session"
)

// DefaultRenewalWindow is how long before expiry a credential counts as
// "near expiry" and gets renewed proactively.
const DefaultRenewalWindow = 10 * time.Minute

// Renewer exchanges a refresh token for a fresh credential session.
// *Client satisfies it; tests substitute stubs.
type Renewer interface {
	Refresh(ctx context.Context, refreshToken string) (*session.Session, error)
}

// RenewalCallback is invoked after every renewal attempt: with the new
// session on success, or with a nil session and the failure on rejection.
// The application uses it to refresh cached user state or force
// re-authentication.
type RenewalCallback func(sess *session.Session, err error)

// Manager owns the current credential for one client instance. It keeps a
// fast in-memory copy for synchronous reads, persists changes through the
// session Persistor, renews proactively ahead of expiry via a one-shot
// timer, and collapses concurrent renewal attempts into a single backend
// call whose outcome every caller shares.
//
// The stores are the source of truth; the in-memory copy is a cache that is
// always safe to discard and re-read via Restore.
type Manager struct {
	renewer   Renewer
	persistor *session.Persistor
	log       *slog.Logger
	window    time.Duration
	now       func() time.Time

	mu        sync.Mutex
	current   *session.Session
	inflight  *async.Future[*session.Session]
	timer     *time.Timer
	onRenewal RenewalCallback
}

// NewManager creates a Manager renewing through the given Renewer. Without
// options it persists to an in-memory ephemeral store only.
func NewManager(renewer Renewer, opts ...Option) *Manager {
	m := &Manager{
		renewer: renewer,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		window:  DefaultRenewalWindow,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.persistor == nil {
		m.persistor = session.NewPersistor()
	}

	return m
}

// OnRenewal registers the renewal callback. A nil callback unregisters.
func (m *Manager) OnRenewal(cb RenewalCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRenewal = cb
}

// SetCredentials replaces the current credential wholesale: updates the
// in-memory copy, persists the record and re-arms the proactive renewal
// timer. Any previously armed timer is cancelled first so a stale timer can
// never fire against replaced credentials.
func (m *Manager) SetCredentials(ctx context.Context, sess *session.Session) {
	if sess == nil {
		return
	}

	m.mu.Lock()
	m.current = sess.Clone()
	m.armTimerLocked(sess)
	m.mu.Unlock()

	m.persistor.SetSession(ctx, sess)

	m.log.DebugContext(ctx, "credentials updated",
		logger.ExpiresIn(sess.ExpiresIn(m.now())))
}

// ClearCredentials disarms the renewal timer, drops the in-memory copy and
// clears every persisted copy.
func (m *Manager) ClearCredentials(ctx context.Context) {
	m.mu.Lock()
	m.disarmTimerLocked()
	m.current = nil
	m.mu.Unlock()

	m.persistor.ClearSession(ctx)
}

// Restore hydrates the manager from a previously persisted session, arming
// the renewal timer from the restored expiry. Returns nil when no usable
// session is stored.
func (m *Manager) Restore(ctx context.Context) *session.Session {
	sess := m.persistor.GetSession(ctx)
	if sess == nil {
		return nil
	}
	m.SetCredentials(ctx, sess)
	return sess
}

// AccessToken returns the cached access token, or empty when logged out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.AccessToken
}

// RefreshToken returns the cached refresh token, or empty when logged out.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.RefreshToken
}

// Session returns a copy of the cached session, or nil when logged out.
func (m *Manager) Session() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// NeedsRenewal reports whether the current credential is near expiry.
// A credential without a known expiry never needs renewal, and neither does
// an absent one.
func (m *Manager) NeedsRenewal() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.needsRenewalLocked()
}

func (m *Manager) needsRenewalLocked() bool {
	if m.current == nil || !m.current.HasExpiry() {
		return false
	}
	return m.current.ExpiresIn(m.now()) <= m.window
}

// RenewIfNeeded renews the credential if it is near expiry. When a renewal
// is already in flight the caller attaches to it and observes the shared
// outcome instead of starting a second backend call. Returns nil
// immediately when no renewal is needed.
func (m *Manager) RenewIfNeeded(ctx context.Context) error {
	return m.renew(ctx, false)
}

// ForceRenew renews unconditionally, bypassing the freshness check. Used by
// the request executor after an unauthorized response.
func (m *Manager) ForceRenew(ctx context.Context) error {
	return m.renew(ctx, true)
}

func (m *Manager) renew(ctx context.Context, force bool) error {
	m.mu.Lock()

	if !force && !m.needsRenewalLocked() {
		m.mu.Unlock()
		return nil
	}

	// Attach to the in-flight renewal instead of starting a duplicate.
	if f := m.inflight; f != nil {
		m.mu.Unlock()
		_, err := f.Await()
		return err
	}

	refreshToken := ""
	if m.current != nil {
		refreshToken = m.current.RefreshToken
	}
	if refreshToken == "" {
		m.mu.Unlock()
		return ErrNoRefreshToken
	}

	// The renewal outcome is shared by every attached caller, so it must
	// not die with the first caller's context.
	f := async.Run(context.WithoutCancel(ctx), func(ctx context.Context) (*session.Session, error) {
		sess, err := m.doRenew(ctx, refreshToken)

		m.mu.Lock()
		m.inflight = nil
		m.mu.Unlock()

		return sess, err
	})
	m.inflight = f
	m.mu.Unlock()

	_, err := f.Await()
	return err
}

// doRenew performs the actual exchange and applies its outcome. A failed
// renewal is terminal for the credential pair: the backend rejecting the
// refresh token means it is permanently invalid, so local state is cleared
// rather than retried.
func (m *Manager) doRenew(ctx context.Context, refreshToken string) (*session.Session, error) {
	m.log.DebugContext(ctx, "renewing credentials")

	sess, err := m.renewer.Refresh(ctx, refreshToken)
	if err != nil {
		m.log.WarnContext(ctx, "credential renewal failed", logger.Error(err))
		m.ClearCredentials(ctx)
		m.notifyRenewal(nil, err)
		return nil, err
	}

	m.SetCredentials(ctx, sess)
	m.log.InfoContext(ctx, "credentials renewed",
		logger.ExpiresIn(sess.ExpiresIn(m.now())))
	m.notifyRenewal(sess, nil)
	return sess, nil
}

func (m *Manager) notifyRenewal(sess *session.Session, err error) {
	m.mu.Lock()
	cb := m.onRenewal
	m.mu.Unlock()

	if cb != nil {
		cb(sess, err)
	}
}

// armTimerLocked schedules a one-shot proactive renewal at
// max(0, expiresIn - window). Credentials without a known expiry get no
// timer; only reactive renewal can refresh those.
func (m *Manager) armTimerLocked(sess *session.Session) {
	m.disarmTimerLocked()

	if !sess.HasExpiry() {
		return
	}

	delay := sess.ExpiresIn(m.now()) - m.window
	if delay < 0 {
		delay = 0
	}

	m.timer = time.AfterFunc(delay, func() {
		_ = m.RenewIfNeeded(context.Background())
	})
}

func (m *Manager) disarmTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
