package httpclient

import "time"

// Config holds request delivery configuration.
type Config struct {
	// Timeout bounds each network attempt.
	Timeout time.Duration `env:"ASKELIO_REQUEST_TIMEOUT" envDefault:"30s"`

	// MaxAttempts is the attempt budget for transient failures.
	MaxAttempts int `env:"ASKELIO_REQUEST_MAX_ATTEMPTS" envDefault:"3"`

	// BaseDelay is the initial retry delay; it doubles per attempt up to
	// MaxDelay.
	BaseDelay time.Duration `env:"ASKELIO_REQUEST_BASE_DELAY" envDefault:"1s"`

	// MaxDelay caps the retry delay.
	MaxDelay time.Duration `env:"ASKELIO_REQUEST_MAX_DELAY" envDefault:"30s"`
}

// DefaultConfig returns default delivery configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// NewFromConfig creates a Client with config-derived defaults. Additional
// options are applied after the config-derived ones and may override them.
func NewFromConfig(creds CredentialSource, cfg Config, opts ...Option) *Client {
	backoff := DefaultBackoff()
	if cfg.BaseDelay > 0 {
		backoff.InitialInterval = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		backoff.MaxInterval = cfg.MaxDelay
	}

	configOpts := []Option{
		WithDefaults(
			WithTimeout(cfg.Timeout),
			WithMaxAttempts(cfg.MaxAttempts),
			WithBackoff(backoff),
		),
	}
	configOpts = append(configOpts, opts...)

	return New(creds, configOpts...)
}
