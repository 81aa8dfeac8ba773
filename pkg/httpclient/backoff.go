package httpclient

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy computes the pause before a retry attempt.
type BackoffStrategy interface {
	// NextInterval returns the delay before the given attempt. Attempt
	// numbering starts at 1 for the first retry.
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically per attempt, capped at
// MaxInterval, with optional jitter to spread out synchronized retries.
type ExponentialBackoff struct {
	// InitialInterval is the delay before the first retry.
	InitialInterval time.Duration

	// MaxInterval caps the computed delay.
	MaxInterval time.Duration

	// Multiplier scales the delay between consecutive attempts.
	Multiplier float64

	// JitterFactor randomizes the delay by ±factor (0 disables jitter).
	JitterFactor float64
}

// DefaultBackoff returns the standard delivery backoff: 1s initial delay
// doubling per attempt up to 30s, with 10% jitter.
func DefaultBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

func (b *ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	interval := float64(b.InitialInterval) * math.Pow(b.Multiplier, float64(attempt-1))
	if max := float64(b.MaxInterval); interval > max {
		interval = max
	}

	if b.JitterFactor > 0 {
		jitter := interval * b.JitterFactor
		interval += jitter * (2*rand.Float64() - 1)
	}

	if interval < 0 {
		interval = 0
	}
	return time.Duration(interval)
}

// FixedBackoff pauses the same Interval before every retry.
type FixedBackoff struct {
	Interval time.Duration
}

func (b *FixedBackoff) NextInterval(int) time.Duration {
	return b.Interval
}
