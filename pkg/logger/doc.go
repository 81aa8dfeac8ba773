// Package logger provides a thin factory around Go's slog package with
// functional options for format, level, output and static attributes, plus
// helper attribute constructors used across the SDK.
//
// The single entry point New builds a *slog.Logger configured for either
// human-readable text output (development) or JSON (production). Helper
// constructors such as Error, Duration and Attempt keep attribute naming
// consistent between the auth, session and httpclient packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("askelio-client"),
//	    logger.WithComponent("auth"),
//	)
//	log.Info("session renewed", logger.ExpiresIn(55*time.Minute))
package logger
