package session

// Config holds session storage configuration.
type Config struct {
	// Namespace isolates session records between client instances sharing
	// the same backends.
	Namespace string `env:"ASKELIO_SESSION_NAMESPACE" envDefault:"default"`

	// Dir is the base directory for the durable file backend. Empty selects
	// an "askelio" directory under the user config dir.
	Dir string `env:"ASKELIO_SESSION_DIR"`
}

// DefaultConfig returns default session storage configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "default",
	}
}

// NewFromConfig creates a Persistor with an in-memory ephemeral backend and
// a file-based durable backend per the provided Config. Additional options
// are applied after the config-derived ones and may override them.
func NewFromConfig(cfg Config, opts ...Option) *Persistor {
	configOpts := []Option{
		WithNamespace(cfg.Namespace),
		WithDurableStore(NewFileStore(cfg.Dir)),
	}

	configOpts = append(configOpts, opts...)

	return NewPersistor(configOpts...)
}
