package build

import (
	"context"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/pkg/assets"
	"github.com/remix-go/remix/pkg/render"
)

// Artifacts resolves build outputs for a request. Implementations are
// safe for concurrent use.
type Artifacts interface {
	// Manifest returns the full browser build manifest. The live
	// variant rebuilds only routeIDs for speed; the precompiled
	// variant ignores routeIDs and serves the cached artifact.
	Manifest(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (assets.Manifest, error)

	// ServerEntry returns the server entry module.
	ServerEntry(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, error)

	// RouteModules returns the modules for the given route ids.
	// Unknown ids are omitted, not an error.
	RouteModules(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (render.RouteModules, error)
}

// ModuleResolver produces the server entry and route modules. The live
// variant re-invokes it every request after the cache purge, so module
// construction side effects (re-reading templates, reloading plugins)
// happen freshly; the precompiled variant invokes it once.
type ModuleResolver interface {
	Resolve(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error)
}

// ResolverFunc adapts a function into a ModuleResolver.
type ResolverFunc func(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error)

func (f ResolverFunc) Resolve(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error) {
	return f(ctx, cfg)
}

// StaticResolver returns a resolver serving fixed, compiled-in modules.
func StaticResolver(entry render.ServerEntry, modules render.RouteModules) ModuleResolver {
	return ResolverFunc(func(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error) {
		return entry, modules, nil
	})
}

// selectModules narrows resolved modules to the requested ids.
func selectModules(all render.RouteModules, routeIDs []string) render.RouteModules {
	selected := make(render.RouteModules, len(routeIDs))
	for _, id := range routeIDs {
		if mod, ok := all[id]; ok {
			selected[id] = mod
		}
	}
	return selected
}
