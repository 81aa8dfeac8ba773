package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache stores parsed configuration structs keyed by their concrete type so
// that each type is read from the environment exactly once per process.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &cache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	dotenvOnce sync.Once
)

// Load populates the given configuration struct from environment variables
// based on `env` field tags. A .env file in the working directory is loaded
// on first use if present; its absence is not an error.
//
// Each configuration type is parsed once per process; later calls for the
// same type return the cached copy, so concurrent components reading the
// same Config never race on the environment.
//
// Example:
//
//	type ClientConfig struct {
//		BaseURL string        `env:"ASKELIO_API_URL,required"`
//		Timeout time.Duration `env:"ASKELIO_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[key]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	once, exists := globalCache.onces[key]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[key] = once
	}
	globalCache.mu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}

		globalCache.mu.Lock()
		globalCache.values[key] = *v // store a copy, callers must not see each other's edits
		globalCache.mu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	globalCache.mu.RLock()
	cached, ok = globalCache.values[key]
	globalCache.mu.RUnlock()
	if !ok {
		// once.Do already ran (and failed) on another goroutine
		return ErrConfigNotLoaded
	}
	*v = cached.(T)
	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// typeName returns a stable identifier for the generic type T.
func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
