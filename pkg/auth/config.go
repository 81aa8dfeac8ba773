package auth

import "time"

// Config holds auth configuration.
type Config struct {
	// BaseURL of the Askelio API.
	BaseURL string `env:"ASKELIO_API_URL" envDefault:"https://api.askelio.com"`

	// RequestTimeout bounds each auth API call.
	RequestTimeout time.Duration `env:"ASKELIO_AUTH_TIMEOUT" envDefault:"15s"`

	// RenewalWindow is how long before expiry credentials are renewed
	// proactively.
	RenewalWindow time.Duration `env:"ASKELIO_RENEWAL_WINDOW" envDefault:"10m"`
}

// DefaultConfig returns default auth configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://api.askelio.com",
		RequestTimeout: 15 * time.Second,
		RenewalWindow:  DefaultRenewalWindow,
	}
}

// NewFromConfig creates a Manager renewing against the configured API.
// Additional options are applied after the config-derived ones and may
// override them.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	client := NewClient(cfg.BaseURL, WithRequestTimeout(cfg.RequestTimeout))

	configOpts := []Option{
		WithRenewalWindow(cfg.RenewalWindow),
	}
	configOpts = append(configOpts, opts...)

	return NewManager(client, configOpts...)
}
