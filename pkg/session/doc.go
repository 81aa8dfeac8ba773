// Package session persists the Askelio client's credential record across
// storage backends with graceful degradation when durable storage is
// unusable.
//
// A Persistor owns one namespaced session record and duplicates it across
// an ephemeral backend (MemoryStore, bound to the process) and a durable
// backend (FileStore or RedisStore, surviving restarts). On first use the
// durable backend is probed with a throwaway write/delete; if the probe
// fails (read-only filesystem, unwritable directory, unreachable server)
// the instance permanently falls back to ephemeral mode. The decision is
// made once and cached, never re-evaluated mid-session.
//
//	┌────────────┐  SetSession / GetSession / ClearSession
//	│ Persistor  │
//	└────────────┘
//	   │ preferred          │ redundant copy (durable mode)
//	   ▼                    ▼
//	┌─────────────┐     ┌──────────────────────┐
//	│ MemoryStore │     │ FileStore/RedisStore │
//	└─────────────┘     └──────────────────────┘
//
// Reads prefer the ephemeral copy and fall back to the durable one. Expired
// or corrupt records read as nil and expired ones are cleared from every
// backend on the spot. Storage failures are logged and swallowed: losing
// durability must never cost the caller an in-flight renewal.
//
// The two copies are intentionally not reconciled when they diverge, and
// multiple processes sharing one durable backend are not coordinated; the
// last writer wins.
//
// # Usage
//
//	persistor := session.NewPersistor(
//	    session.WithNamespace("default"),
//	    session.WithDurableStore(session.NewFileStore("")),
//	)
//
//	persistor.SetSession(ctx, sess)
//	current := persistor.GetSession(ctx) // nil when absent or expired
package session
