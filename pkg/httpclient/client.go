package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/dobby152/askelio-sub003/pkg/logger"
)

const (
	// DefaultTimeout bounds a single network attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxAttempts is the transient retry budget per request.
	DefaultMaxAttempts = 3

	// maxDrainBytes limits how much of a discarded response body is read
	// before closing, keeping the connection reusable.
	maxDrainBytes = 64 * 1024
)

// CredentialSource supplies and renews the bearer credentials attached to
// outgoing requests. *auth.Manager satisfies it.
type CredentialSource interface {
	RenewIfNeeded(ctx context.Context) error
	ForceRenew(ctx context.Context) error
	AccessToken() string
	RefreshToken() string
}

// Client delivers API requests with authentication, per-attempt timeouts,
// and retries with exponential backoff. Transient failures (network errors,
// timeouts, 5xx) are retried up to the attempt budget; an unauthorized
// response triggers at most one forced credential renewal followed by a
// single replay; other 4xx responses are returned to the caller unretried.
type Client struct {
	httpClient *http.Client
	creds      CredentialSource
	log        *slog.Logger
	defaults   requestOptions
}

type requestOptions struct {
	timeout     time.Duration
	maxAttempts int
	backoff     BackoffStrategy
	headers     map[string]string
	withoutAuth bool
}

// New creates a Client attaching credentials from the given source. A nil
// source produces an unauthenticated client.
func New(creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		creds:      creds,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: requestOptions{
			timeout:     DefaultTimeout,
			maxAttempts: DefaultMaxAttempts,
			backoff:     DefaultBackoff(),
			headers:     map[string]string{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do delivers req and returns the first completed exchange. The request
// context bounds the whole delivery including backoff pauses; each network
// attempt additionally gets its own timeout. Responses with a non-401 4xx
// status are completed exchanges and come back with a nil error; the caller
// owns closing the body of any returned response.
//
// Requests with a body must be replayable (http.NewRequest sets GetBody for
// the common body types).
func (c *Client) Do(ctx context.Context, req *http.Request, opts ...RequestOption) (*http.Response, error) {
	options := c.defaults
	options.headers = maps.Clone(c.defaults.headers)
	for _, opt := range opts {
		opt(&options)
	}

	if req.Body != nil && req.GetBody == nil && options.maxAttempts > 1 {
		return nil, ErrBodyNotReplayable
	}

	authed := !options.withoutAuth && c.creds != nil
	if authed {
		if err := c.creds.RenewIfNeeded(ctx); err != nil {
			// Delivery proceeds with whatever credentials remain; the
			// backend is the authority on whether they still work.
			c.log.WarnContext(ctx, "proactive renewal before request failed",
				slog.String("url", req.URL.String()),
				logger.Error(err))
		}
	}

	var (
		lastErr  error
		reauthed bool
	)
	for attempt := 0; attempt < options.maxAttempts; attempt++ {
		resp, err := c.attempt(ctx, req, &options, authed)
		switch {
		case err != nil:
			lastErr = err
			c.log.WarnContext(ctx, "request attempt failed",
				slog.String("url", req.URL.String()),
				logger.Attempt(attempt+1),
				logger.Error(err))

		case resp.StatusCode == http.StatusUnauthorized && authed:
			drainBody(resp)
			if !reauthed && c.creds.RefreshToken() != "" {
				if renewErr := c.creds.ForceRenew(ctx); renewErr != nil {
					return nil, fmt.Errorf("%w: forced renewal failed: %w", ErrUnauthorized, renewErr)
				}
				reauthed = true
				// Replay immediately with the fresh token; this is the
				// one-shot reactive retry, not a transient backoff step.
				continue
			}
			return nil, fmt.Errorf("%w: %s %s", ErrUnauthorized, req.Method, req.URL.Path)

		case resp.StatusCode >= http.StatusInternalServerError:
			drainBody(resp)
			lastErr = fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)

		default:
			return resp, nil
		}

		if attempt < options.maxAttempts-1 {
			delay := options.backoff.NextInterval(attempt + 1)
			c.log.DebugContext(ctx, "backing off before retry",
				logger.Attempt(attempt+2),
				logger.Duration(delay))
			select {
			case <-ctx.Done():
				return nil, errors.Join(ctx.Err(), lastErr)
			case <-time.After(delay):
			}
		}
	}

	if lastErr == nil {
		// Only reachable when the reactive replay consumed the last attempt.
		lastErr = ErrUnauthorized
	}
	return nil, fmt.Errorf("%w (%d attempts): %w", ErrAttemptsExhausted, options.maxAttempts, lastErr)
}

// attempt sends one clone of req under its own timeout. On success the
// returned body carries the attempt's cancel func and releases it on Close.
func (c *Client) attempt(ctx context.Context, req *http.Request, o *requestOptions, authed bool) (*http.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)

	r := req.Clone(reqCtx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			cancel()
			return nil, errors.Join(ErrBodyNotReplayable, err)
		}
		r.Body = body
	}

	for k, v := range o.headers {
		r.Header.Set(k, v)
	}
	if authed {
		if token := c.creds.AccessToken(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(r) //nolint:bodyclose // closed by the caller or drainBody
	if err != nil {
		cancel()
		if reqCtx.Err() != nil && ctx.Err() == nil {
			return nil, errors.Join(ErrRequestTimeout, err)
		}
		return nil, errors.Join(ErrNetworkFailure, err)
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
	_ = resp.Body.Close()
}
