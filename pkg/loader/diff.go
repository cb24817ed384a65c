package loader

import (
	"context"
	"sync"

	"github.com/remix-go/remix/pkg/router"
)

// LoadDataDiff runs loaders only for routes that changed between two
// match sets, supporting client-driven partial navigation. Results are
// aligned 1:1 with nextMatches.
//
// An entry is considered unchanged, and yields the Unchanged sentinel,
// only when the same route id appears at the same tree depth in
// prevMatches: a route that moved to a different nesting depth must
// reload. With no previous matches everything loads fresh.
func LoadDataDiff(ctx context.Context, src Source, nextMatches, prevMatches []router.Match, loc router.Location, loadCtx any) []Result {
	results := make([]Result, len(nextMatches))
	var wg sync.WaitGroup
	for i, m := range nextMatches {
		if i < len(prevMatches) && prevMatches[i].Route.ID == m.Route.ID {
			results[i] = Unchanged()
			continue
		}
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
