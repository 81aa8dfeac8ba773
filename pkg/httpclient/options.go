package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger for delivery diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDefaults sets per-request defaults applied to every Do call before
// its own options.
func WithDefaults(opts ...RequestOption) Option {
	return func(c *Client) {
		for _, opt := range opts {
			opt(&c.defaults)
		}
	}
}

// RequestOption tunes the delivery of a single request (or, via
// WithDefaults, of every request).
type RequestOption func(*requestOptions)

// WithTimeout bounds each network attempt.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxAttempts sets the total attempt budget for transient failures.
func WithMaxAttempts(attempts int) RequestOption {
	return func(o *requestOptions) {
		if attempts > 0 {
			o.maxAttempts = attempts
		}
	}
}

// WithBackoff replaces the retry backoff strategy.
func WithBackoff(strategy BackoffStrategy) RequestOption {
	return func(o *requestOptions) {
		if strategy != nil {
			o.backoff = strategy
		}
	}
}

// WithBaseDelay keeps the default exponential curve but starts it at the
// given delay.
func WithBaseDelay(delay time.Duration) RequestOption {
	return func(o *requestOptions) {
		if delay <= 0 {
			return
		}
		backoff := DefaultBackoff()
		backoff.InitialInterval = delay
		o.backoff = backoff
	}
}

// WithHeader adds a header to every attempt of the request.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers[key] = value
	}
}

// WithoutAuth skips credential attachment and unauthorized-response
// handling, for endpoints that do not require a session.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.withoutAuth = true
	}
}

// WithNoRetry limits delivery to a single attempt.
func WithNoRetry() RequestOption {
	return func(o *requestOptions) {
		o.maxAttempts = 1
	}
}
