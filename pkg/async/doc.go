// Package async provides a small, generic Future type for running a
// computation in its own goroutine and sharing its eventual outcome.
//
// A Future is obtained from Run, which starts the supplied function and
// immediately returns. Multiple goroutines may wait on the same Future via
// Await or AwaitWithTimeout; every waiter observes the identical result and
// error. This makes Future the natural carrier for "first caller starts the
// work, everyone else attaches" patterns such as deduplicated token renewal
// in pkg/auth.
//
// If the provided context is cancelled before the function starts, the
// Future completes with the context error and the function is never run.
//
// # Usage
//
//	future := async.Run(ctx, func(ctx context.Context) (string, error) {
//	    return fetchSomething(ctx)
//	})
//
//	// elsewhere, possibly from several goroutines:
//	res, err := future.Await()
package async
