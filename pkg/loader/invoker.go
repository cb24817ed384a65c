package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/remix-go/remix/pkg/router"
)

// Args is what every loader invocation receives: the request-scoped
// location, the params extracted for its route, and the caller-supplied
// load context (database handles, sessions, whatever the app passes in).
type Args struct {
	Location router.Location
	Params   map[string]string
	Context  any
}

// Func is a data loader. It runs once per invocation and its outcome is
// normalized into exactly one Result.
type Func func(ctx context.Context, args Args) (any, error)

// Source resolves loaders for a request. The global loader is
// independent of route matches; route loaders are looked up by id.
// Either may be nil, which yields Success(nil).
type Source interface {
	GlobalLoader() Func
	RouteLoader(routeID string) Func
}

// LoadData runs the loader of every match concurrently and returns
// results aligned 1:1 with matches. All loaders settle before LoadData
// returns; no partial results ever escape.
//
// There is no per-loader timeout at this layer: a hung loader blocks
// the whole request. That is a known, accepted gap.
func LoadData(ctx context.Context, src Source, matches []router.Match, loc router.Location, loadCtx any) []Result {
	results := make([]Result, len(matches))
	var wg sync.WaitGroup
	for i, m := range matches {
		wg.Add(1)
		go func(i int, m router.Match) {
			defer wg.Done()
			results[i] = invoke(ctx, src.RouteLoader(m.Route.ID), Args{
				Location: loc,
				Params:   m.Params,
				Context:  loadCtx,
			})
		}(i, m)
	}
	wg.Wait()
	return results
}

// LoadGlobalData runs the root-level loader, independent of any match.
func LoadGlobalData(ctx context.Context, src Source, loc router.Location, loadCtx any) Result {
	return invoke(ctx, src.GlobalLoader(), Args{Location: loc, Context: loadCtx})
}

// LoadAll fans out the global loader and the per-route batch together
// and joins them, which is how the document path runs a request.
func LoadAll(ctx context.Context, src Source, matches []router.Match, loc router.Location, loadCtx any) (global Result, routes []Result) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		global = LoadGlobalData(ctx, src, loc, loadCtx)
	}()
	routes = LoadData(ctx, src, matches, loc, loadCtx)
	wg.Wait()
	return global, routes
}

// invoke runs one loader and converts whatever happens into a Result.
// Panics are recovered here so a misbehaving loader cannot take down
// its siblings or the request handler.
func invoke(ctx context.Context, fn Func, args Args) (res Result) {
	if fn == nil {
		return Success(nil)
	}
	defer func() {
		if r := recover(); r != nil {
			res = Failure(http.StatusInternalServerError, fmt.Errorf("loader panic: %v", r))
		}
	}()
	data, err := fn(ctx, args)
	if err != nil {
		return classify(err)
	}
	return Success(data)
}

// classify maps loader errors onto the result union. Redirects and
// status overrides are expected control outcomes, not faults.
func classify(err error) Result {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return RedirectTo(redirect.To, redirect.Status)
	}
	var status *StatusCodeError
	if errors.As(err, &status) {
		return ChangeStatus(status.Code)
	}
	var httpErr *StatusError
	if errors.As(err, &httpErr) {
		return Failure(httpErr.Status, httpErr)
	}
	return Failure(http.StatusInternalServerError, err)
}
