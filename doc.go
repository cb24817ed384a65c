// Package remix is the request-handling core of a server-side-rendering
// web framework: it matches incoming request paths against a nested
// route tree, runs per-route data loaders concurrently, reconciles their
// outcomes into one HTTP response, and renders a full HTML document or a
// JSON payload for client-side data and manifest refetches.
//
// Create an App with remix.New():
//
//	app := remix.New(remix.Config{
//	    Mode:         remix.ModeProduction,
//	    DefineRoutes: defineRoutes,
//	    ServerEntry:  entry,
//	    Modules:      modules,
//	})
//	http.ListenAndServe(":3000", app)
//
// Bundling, CSS extraction and the templating engine itself are out of
// scope: rendering is an opaque capability behind render.ServerEntry,
// and build artifacts are read through build.Artifacts.
package remix
