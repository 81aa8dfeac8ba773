// Package httpclient delivers Askelio API requests resiliently: it attaches
// bearer credentials, bounds every network attempt with its own timeout,
// retries transient failures with exponential backoff, and reacts to an
// unauthorized response with a single forced credential renewal and replay.
//
// # Architecture
//
// A Client wraps a standard *http.Client and a CredentialSource (satisfied
// by *auth.Manager). Do clones the caller's request per attempt so bodies
// replay cleanly, and classifies each exchange:
//
//	network error / timeout / 5xx ──► retry with backoff, up to the budget
//	401 on the first attempt      ──► force one renewal, replay once
//	401 after the replay          ──► ErrUnauthorized, terminal
//	any other status              ──► returned to the caller as-is
//
// Client errors other than 401 are completed exchanges, not failures: a 404
// or 422 comes back with a nil error and is never retried, because resending
// an ill-formed request cannot change the answer. When the retry budget runs
// out, the returned error wraps ErrAttemptsExhausted around the last
// underlying failure.
//
// # Usage
//
//	client := httpclient.New(manager)
//
//	req, _ := http.NewRequest(http.MethodPost, apiURL+"/documents", body)
//	resp, err := client.Do(ctx, req,
//	    httpclient.WithTimeout(10*time.Second),
//	    httpclient.WithMaxAttempts(5),
//	)
//	if err != nil { ... }
//	defer resp.Body.Close()
//
// The request context bounds the whole delivery including backoff pauses;
// cancel it to abandon the request between attempts.
package httpclient
