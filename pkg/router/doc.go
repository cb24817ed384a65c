// Package router matches URL paths against a nested route tree.
//
// Routes form a tree owned by the application config. A child route's
// pattern is relative to its parent's matched prefix:
//
//	routes := []*router.Route{
//	    {ID: "routes/posts", Path: "posts", Children: []*router.Route{
//	        {ID: "routes/posts/index", Path: ""},
//	        {ID: "routes/posts/$id", Path: ":id"},
//	    }},
//	}
//
//	matches := router.MatchRoutes(routes, "/posts/123")
//	// matches[0].Route.ID == "routes/posts"
//	// matches[1].Params["id"] == "123"
//
// Matching is pure and synchronous. A nil result means no route matched,
// which callers treat as a first-class 404 outcome rather than an error.
package router
