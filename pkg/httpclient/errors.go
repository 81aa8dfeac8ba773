package httpclient

import "errors"

// Stable error identities for delivery outcomes. Transient failures are
// retried internally and only surface wrapped in ErrAttemptsExhausted once
// the retry budget is spent.
var (
	// ErrAttemptsExhausted indicates every attempt failed; it wraps the last
	// underlying failure.
	ErrAttemptsExhausted = errors.New("httpclient: attempts exhausted")

	// ErrRequestTimeout indicates an attempt exceeded its wall-clock budget.
	ErrRequestTimeout = errors.New("httpclient: request timeout")

	// ErrNetworkFailure indicates the request never produced a response.
	ErrNetworkFailure = errors.New("httpclient: network failure")

	// ErrServerError indicates a 5xx response, treated as transient.
	ErrServerError = errors.New("httpclient: server error")

	// ErrUnauthorized indicates the request stayed unauthorized after the
	// one-shot forced renewal, or no renewal was possible. Terminal for the
	// request.
	ErrUnauthorized = errors.New("httpclient: unauthorized")

	// ErrBodyNotReplayable indicates a request body that cannot be re-sent
	// across attempts. Build requests with http.NewRequest or set GetBody.
	ErrBodyNotReplayable = errors.New("httpclient: request body is not replayable")
)
