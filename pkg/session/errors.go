package session

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key.
	ErrKeyNotFound = errors.New("session.key_not_found")

	// ErrInvalidKey indicates a storage key that the backend cannot represent.
	ErrInvalidKey = errors.New("session.invalid_key")

	// ErrFailedToParseRedisConnString indicates a malformed Redis URL.
	ErrFailedToParseRedisConnString = errors.New("session.failed_to_parse_redis_conn_string")

	// ErrRedisNotReady indicates the Redis server did not become reachable
	// within the configured retry budget.
	ErrRedisNotReady = errors.New("session.redis_not_ready")
)
