// Package auth owns the credential lifecycle of an Askelio client: it
// caches the current access token for fast synchronous reads, renews it
// ahead of expiry, collapses concurrent renewal attempts into a single
// backend call, and notifies the application after every renewal attempt.
//
// # Architecture
//
// A Manager pairs a Renewer (the auth API Client in production) with a
// session.Persistor. SetCredentials persists the session and arms a
// one-shot timer that fires a proactive renewal shortly before expiry; the
// timer is always cancelled before a replacement is armed. RenewIfNeeded
// and ForceRenew funnel into one mutex-guarded in-flight renewal slot: the
// first caller starts the exchange, concurrent callers attach to the same
// Future and observe the identical outcome, and the slot clears on
// completion regardless of result.
//
//	┌──────────────┐ RenewIfNeeded / ForceRenew  ┌─────────┐
//	│  callers (N) │ ──────────────────────────► │ Manager │──► Renewer ──► POST /auth/refresh
//	└──────────────┘   one shared in-flight call └─────────┘
//	                                                  │
//	                                                  ▼
//	                                          session.Persistor
//
// A failed renewal is terminal for the credential pair: the backend
// rejecting a refresh token means it is permanently invalid, so the Manager
// clears all local state and reports the failure through the OnRenewal
// callback instead of retrying. The application reacts by treating the user
// as logged out.
//
// # Usage
//
//	manager := auth.NewFromConfig(cfg,
//	    auth.WithPersistor(persistor),
//	    auth.WithOnRenewal(func(sess *session.Session, err error) {
//	        if err != nil {
//	            forceReauthentication()
//	        }
//	    }),
//	)
//
//	// At startup, pick up a previous session if one survived.
//	manager.Restore(ctx)
//
//	// Before an API call:
//	if err := manager.RenewIfNeeded(ctx); err != nil { ... }
//	token := manager.AccessToken()
//
// # Error Handling
//
// Renewal errors wrap stable sentinels: ErrRenewalRejected when the backend
// answered and said no, ErrRequestFailed when it could not be reached, and
// ErrNoRefreshToken when there is nothing to exchange.
package auth
