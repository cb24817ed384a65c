package render

import (
	"net/http"

	"github.com/remix-go/remix/pkg/loader"
)

// Module provides one route's implementation. What a module renders is
// the server entry's business; the core only needs its loader.
type Module interface {
	// Loader returns the route's data loader, or nil when the route
	// has none.
	Loader() loader.Func
}

// RouteModules maps route ids to their modules. Resolved per request in
// development and cached for the process lifetime in production.
type RouteModules map[string]Module

// ModuleFunc adapts a bare loader function into a Module.
type ModuleFunc loader.Func

func (f ModuleFunc) Loader() loader.Func { return loader.Func(f) }

// ServerEntry is the compiled server entry module: an opaque render
// capability invoked with the request, the reconciled status code and
// the assembled context. Its output is the HTTP response body.
type ServerEntry interface {
	Render(r *http.Request, statusCode int, rc *Context) ([]byte, error)
}

// ServerEntryFunc adapts a function into a ServerEntry.
type ServerEntryFunc func(r *http.Request, statusCode int, rc *Context) ([]byte, error)

func (f ServerEntryFunc) Render(r *http.Request, statusCode int, rc *Context) ([]byte, error) {
	return f(r, statusCode, rc)
}
