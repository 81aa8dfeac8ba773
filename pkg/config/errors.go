package config

import "errors"

var (
	// ErrNilPointer indicates a nil destination was passed to Load.
	ErrNilPointer = errors.New("config: nil pointer provided")

	// ErrParsingConfig indicates environment variables could not be parsed
	// into the destination struct.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")

	// ErrConfigNotLoaded indicates a previous Load for the same type failed
	// and no cached value is available.
	ErrConfigNotLoaded = errors.New("config: configuration not loaded")
)
