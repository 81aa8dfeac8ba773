package session

import (
	"bytes"
	"context"

	"github.com/google/uuid"
)

// Mode is the storage strategy selected for a Persistor instance. It is
// decided once, on first use, and never re-evaluated mid-session.
type Mode int

const (
	// ModeEphemeral writes only to the process-bound backend. Selected when
	// the durable backend is missing or fails the usability probe.
	ModeEphemeral Mode = iota

	// ModeDurable writes to both the ephemeral and the durable backend for
	// redundancy, preferring the ephemeral copy on read.
	ModeDurable
)

func (m Mode) String() string {
	switch m {
	case ModeDurable:
		return "durable"
	default:
		return "ephemeral"
	}
}

// DetectMode probes the durable backend with a throwaway write, read-back
// and delete. Any failure selects ModeEphemeral: silently discarding writes
// to a broken backend is worse than under-persisting. The probe key carries
// a random suffix so concurrent instances never collide on it.
func DetectMode(ctx context.Context, durable Store) Mode {
	if durable == nil {
		return ModeEphemeral
	}

	probeKey := "askelio.storage.probe." + uuid.NewString()
	probeValue := []byte("probe")

	if err := durable.Set(ctx, probeKey, probeValue); err != nil {
		return ModeEphemeral
	}
	read, err := durable.Get(ctx, probeKey)
	if err != nil || !bytes.Equal(read, probeValue) {
		_ = durable.Delete(ctx, probeKey)
		return ModeEphemeral
	}
	if err := durable.Delete(ctx, probeKey); err != nil {
		return ModeEphemeral
	}

	return ModeDurable
}
