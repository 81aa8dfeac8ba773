package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Persistor.
type Option func(*Persistor)

// WithEphemeralStore sets the process-bound backend. Defaults to MemoryStore.
func WithEphemeralStore(store Store) Option {
	return func(p *Persistor) {
		if store != nil {
			p.ephemeral = store
		}
	}
}

// WithDurableStore sets the backend that persists across restarts. Without
// one the Persistor always runs in ephemeral mode.
func WithDurableStore(store Store) Option {
	return func(p *Persistor) {
		p.durable = store
	}
}

// WithNamespace sets the storage namespace. Instances with different
// namespaces never read each other's records, so a second client in the
// same context cannot inherit a half-written session.
func WithNamespace(namespace string) Option {
	return func(p *Persistor) {
		if namespace != "" {
			p.namespace = namespace
		}
	}
}

// WithMode forces the storage mode, skipping the durable-backend probe.
func WithMode(mode Mode) Option {
	return func(p *Persistor) {
		m := mode
		p.forced = &m
	}
}

// WithLogger sets the logger for degradation events.
func WithLogger(log *slog.Logger) Option {
	return func(p *Persistor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithTimeSource overrides the clock used for expiry checks.
func WithTimeSource(now func() time.Time) Option {
	return func(p *Persistor) {
		if now != nil {
			p.now = now
		}
	}
}
