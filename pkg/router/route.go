package router

import "fmt"

// Route is a node in the route tree.
//
// The tree is owned by the application config and is never mutated by the
// matcher. Targeted rebuilds are keyed by route-id lists, so no part of
// the shared tree is ever re-parented or rewritten per request.
type Route struct {
	// ID is the stable route identifier (e.g. "routes/posts/$id").
	ID string

	// Path is the pattern for this route, relative to its parent's
	// matched prefix. Supported segments:
	//   - static:    "posts"
	//   - parameter: ":id"
	//   - catch-all: "*" or "*slug" (terminal only)
	// An empty Path marks an index route that matches when the parent
	// has consumed the whole URL.
	Path string

	// ModuleID references the module implementing this route's
	// component and loader. Defaults to ID when empty.
	ModuleID string

	// ParentID is the ID of the parent route, empty at the root.
	// Populated by config loading; the matcher does not read it.
	ParentID string

	// Children are nested routes, in declaration order. Declaration
	// order breaks ties between equally specific siblings.
	Children []*Route
}

// Module returns the module id for the route, falling back to the
// route id when none was set.
func (r *Route) Module() string {
	if r.ModuleID != "" {
		return r.ModuleID
	}
	return r.ID
}

// Walk visits every route in the tree depth-first, parents before
// children. It stops early if fn returns an error.
func Walk(routes []*Route, fn func(r *Route) error) error {
	for _, r := range routes {
		if err := fn(r); err != nil {
			return err
		}
		if err := Walk(r.Children, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks structural invariants of the tree: unique ids,
// non-empty ids, and catch-all segments only in terminal position.
func Validate(routes []*Route) error {
	seen := make(map[string]bool)
	return Walk(routes, func(r *Route) error {
		if r.ID == "" {
			return fmt.Errorf("route with path %q has no id", r.Path)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate route id %q", r.ID)
		}
		seen[r.ID] = true
		segs := splitPath(r.Path)
		for i, seg := range segs {
			if isCatchAll(seg) && (i != len(segs)-1 || len(r.Children) > 0) {
				return fmt.Errorf("route %q: catch-all segment must be terminal", r.ID)
			}
		}
		return nil
	})
}
