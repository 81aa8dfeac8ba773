package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// keyPrefix namespaces every session record written by this SDK.
const keyPrefix = "askelio.session."

// legacyKeys are unnamespaced keys written by earlier client releases.
// They are cleared on ClearSession for backward compatibility but never
// written going forward.
var legacyKeys = []string{
	"access_token",
	"refresh_token",
	"token_expires_at",
	"askelio_user",
}

// Persistor owns session persistence for one client instance. It writes a
// single namespaced record, duplicated across an ephemeral and a durable
// backend when the durable one passes the usability probe.
//
// Storage is deliberately forgiving: persistence failures degrade to the
// ephemeral backend and are logged, never surfaced as hard failures, so a
// broken disk can cost durability but not the user's session. The two
// copies are not reconciled if they diverge; the ephemeral copy wins on
// read and cross-process coordination over the durable backend is out of
// scope (last writer wins).
type Persistor struct {
	ephemeral  Store
	durable    Store
	namespace  string
	instanceID uuid.UUID
	log        *slog.Logger
	now        func() time.Time

	modeOnce sync.Once
	mode     Mode
	forced   *Mode
}

// NewPersistor creates a Persistor. Without options it uses an in-memory
// ephemeral backend, no durable backend (forcing ephemeral mode) and the
// "default" namespace.
func NewPersistor(opts ...Option) *Persistor {
	p := &Persistor{
		namespace:  "default",
		instanceID: uuid.New(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.ephemeral == nil {
		p.ephemeral = NewMemoryStore()
	}

	return p
}

// Namespace returns the storage namespace of this instance.
func (p *Persistor) Namespace() string {
	return p.namespace
}

// InstanceID identifies this Persistor in logs.
func (p *Persistor) InstanceID() uuid.UUID {
	return p.instanceID
}

// Mode returns the storage strategy, probing the durable backend on first
// call and caching the outcome for the lifetime of the instance.
func (p *Persistor) Mode(ctx context.Context) Mode {
	p.modeOnce.Do(func() {
		if p.forced != nil {
			p.mode = *p.forced
			return
		}
		p.mode = DetectMode(ctx, p.durable)
		p.log.DebugContext(ctx, "storage mode selected",
			slog.String("mode", p.mode.String()),
			slog.String("instance_id", p.instanceID.String()),
		)
	})
	return p.mode
}

// SetSession persists the session record, replacing any previous one
// wholesale. In durable mode the record is written to both backends for
// redundancy; a failed durable write degrades to ephemeral-only. Failures
// are logged and swallowed so persistence can never abort a renewal.
func (p *Persistor) SetSession(ctx context.Context, s *Session) {
	if s == nil {
		return
	}

	data, err := s.encode()
	if err != nil {
		p.log.ErrorContext(ctx, "failed to encode session", slog.Any("error", err))
		return
	}

	key := p.key()
	if err := p.ephemeral.Set(ctx, key, data); err != nil {
		p.log.WarnContext(ctx, "ephemeral session write failed", slog.Any("error", err))
	}

	if p.Mode(ctx) == ModeDurable {
		if err := p.durable.Set(ctx, key, data); err != nil {
			p.log.WarnContext(ctx, "durable session write failed, keeping ephemeral copy only",
				slog.Any("error", err))
		}
	}
}

// GetSession retrieves the stored session record, or nil when none exists.
// In durable mode the ephemeral copy is preferred and the durable one is a
// fallback. Corrupt records read as nil. An expired record is cleared from
// every backend and read as nil, so expired sessions self-clean.
func (p *Persistor) GetSession(ctx context.Context) *Session {
	key := p.key()

	data, err := p.ephemeral.Get(ctx, key)
	if err != nil && p.Mode(ctx) == ModeDurable {
		data, err = p.durable.Get(ctx, key)
	}
	if err != nil {
		return nil
	}

	s := decodeSession(data)
	if s == nil {
		return nil
	}

	if s.IsExpired(p.now()) {
		p.log.DebugContext(ctx, "stored session expired, clearing",
			slog.String("instance_id", p.instanceID.String()))
		p.ClearSession(ctx)
		return nil
	}

	return s
}

// ClearSession deletes the namespaced record from every backend, plus the
// legacy unnamespaced keys written by earlier releases. Per-backend
// failures are swallowed so one broken backend cannot block cleanup of the
// others.
func (p *Persistor) ClearSession(ctx context.Context) {
	stores := []Store{p.ephemeral}
	if p.durable != nil {
		stores = append(stores, p.durable)
	}

	key := p.key()
	for _, store := range stores {
		if err := store.Delete(ctx, key); err != nil {
			p.log.DebugContext(ctx, "session delete failed", slog.Any("error", err))
		}
		for _, legacy := range legacyKeys {
			if err := store.Delete(ctx, legacy); err != nil {
				p.log.DebugContext(ctx, "legacy key delete failed",
					slog.String("key", legacy), slog.Any("error", err))
			}
		}
	}
}

func (p *Persistor) key() string {
	return keyPrefix + p.namespace
}
