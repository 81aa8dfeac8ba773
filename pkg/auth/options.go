package auth

import (
	"log/slog"
	"time"

	"github.com/dobby152/askelio-sub003/pkg/session"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithPersistor sets the session persistence layer. Defaults to an
// in-memory ephemeral Persistor.
func WithPersistor(p *session.Persistor) Option {
	return func(m *Manager) {
		if p != nil {
			m.persistor = p
		}
	}
}

// WithRenewalWindow sets how long before expiry a credential counts as near
// expiry. Defaults to DefaultRenewalWindow.
func WithRenewalWindow(window time.Duration) Option {
	return func(m *Manager) {
		if window > 0 {
			m.window = window
		}
	}
}

// WithLogger sets the logger for renewal lifecycle events. Token material
// is never logged.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithOnRenewal registers the renewal callback at construction time.
func WithOnRenewal(cb RenewalCallback) Option {
	return func(m *Manager) {
		m.onRenewal = cb
	}
}

// WithTimeSource overrides the clock used for freshness checks.
func WithTimeSource(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
