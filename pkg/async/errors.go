package async

import "errors"

var (
	// ErrTimeout indicates AwaitWithTimeout gave up before the future completed.
	ErrTimeout = errors.New("async: operation timed out waiting for future completion")
)
