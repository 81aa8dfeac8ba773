package auth

import "errors"

var (
	// ErrNoRefreshToken indicates a renewal was requested without a refresh
	// token to exchange.
	ErrNoRefreshToken = errors.New("auth.no_refresh_token")

	// ErrRenewalRejected indicates the backend explicitly rejected the
	// refresh token. The token is permanently invalid; local state is
	// cleared and the application must re-authenticate.
	ErrRenewalRejected = errors.New("auth.renewal_rejected")

	// ErrAuthFailed indicates a login or registration attempt was rejected.
	ErrAuthFailed = errors.New("auth.authentication_failed")

	// ErrUnexpectedResponse indicates the backend returned a payload that
	// does not match the auth envelope contract.
	ErrUnexpectedResponse = errors.New("auth.unexpected_response")

	// ErrRequestFailed indicates the auth endpoint could not be reached.
	ErrRequestFailed = errors.New("auth.request_failed")
)
