// Package loader runs per-route data loaders and normalizes their
// outcomes into a closed result union.
//
// A loader is a plain function:
//
//	func(ctx context.Context, args loader.Args) (any, error)
//
// Ordinary return values become Success results. Control-flow outcomes
// are signalled through typed errors: loader.Redirect for redirects,
// loader.StatusCode for status overrides, loader.WithStatus for errors
// carrying a status. Anything else, including a recovered panic,
// becomes an Error result with status 500.
//
// All loaders for one request run concurrently and all settle before
// results are returned; a failing loader never aborts its siblings.
// Reconciliation of conflicting outcomes happens in the dispatcher,
// one level up.
package loader
