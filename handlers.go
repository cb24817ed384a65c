package remix

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/pkg/assets"
	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/render"
	"github.com/remix-go/remix/pkg/router"
)

// =============================================================================
// Data Mode
// =============================================================================

// handleData serves the data-only JSON endpoint used by client-side
// navigation: the loader results for ?path, serialized as an array
// aligned with the match list. With ?from present, only the routes that
// changed between the two locations load fresh; the rest come back as
// the unchanged sentinel.
func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := a.requestConfig(ctx)
	if err != nil {
		a.logger.Error("config read failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, http.StatusForbidden, "Missing ?path")
		return
	}

	loc := router.ParseLocation(path)
	matches := router.MatchRoutes(cfg.Routes, loc.Pathname)
	if matches == nil {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No routes matched path %q", path))
		return
	}

	modules, err := a.artifacts.RouteModules(ctx, cfg, config.RouteIDs(matches))
	if err != nil {
		a.logger.Error("module resolution failed", "path", path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	src := a.wrapSource(moduleSource{global: cfg.GlobalLoader, modules: modules})
	loadCtx := a.loadContext(r)

	var results []loader.Result
	if from := r.URL.Query().Get("from"); from != "" {
		prev := router.ParseLocation(from)
		prevMatches := router.MatchRoutes(cfg.Routes, prev.Pathname)
		results = loader.LoadDataDiff(ctx, src, matches, prevMatches, loc, loadCtx)
	} else {
		results = loader.LoadData(ctx, src, matches, loc, loadCtx)
	}

	writeJSON(w, http.StatusOK, results)
}

// =============================================================================
// Manifest Mode
// =============================================================================

// manifestPayload is the manifest endpoint's response shape.
type manifestPayload struct {
	BuildManifest assets.Manifest                   `json:"buildManifest"`
	RouteManifest map[string]render.RouteDescriptor `json:"routeManifest"`
}

// handleManifest serves the build and route manifests for ?path. A
// build-manifest fetch failure degrades to an empty manifest here; the
// client retries on its next navigation.
func (a *App) handleManifest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := a.requestConfig(ctx)
	if err != nil {
		a.logger.Error("config read failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, http.StatusForbidden, "Missing ?path")
		return
	}

	loc := router.ParseLocation(path)
	matches := router.MatchRoutes(cfg.Routes, loc.Pathname)
	if matches == nil {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No routes matched path %q", path))
		return
	}

	routeIDs := config.RouteIDs(matches)
	full, err := a.artifacts.Manifest(ctx, cfg, routeIDs)
	if err != nil {
		a.logger.Warn("manifest fetch failed, serving empty manifest", "path", path, "error", err)
		full = assets.Manifest{}
	}

	writeJSON(w, http.StatusOK, manifestPayload{
		BuildManifest: assets.Partial(full, documentKeys(routeIDs)),
		RouteManifest: render.RouteManifest(matches),
	})
}

// =============================================================================
// Document Mode
// =============================================================================

// handleDocument serves full HTML documents: match, load, reconcile,
// assemble, render. Unlike the manifest endpoint, any artifact failure
// here is fatal for the request.
func (a *App) handleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := a.requestConfig(ctx)
	if err != nil {
		a.logger.Error("config read failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	loc := locationFromRequest(r)
	status := http.StatusOK
	matches := router.MatchRoutes(cfg.Routes, loc.Pathname)
	global := loader.Success(nil)
	var results []loader.Result

	if matches == nil {
		// No match, including no catch-all, is a first-class outcome:
		// render the reserved 404 route with loaders skipped.
		status = http.StatusNotFound
		matches = syntheticMatches(NotFoundRouteID, loc)
		results = []loader.Result{loader.Success(nil)}
	} else {
		modules, err := a.artifacts.RouteModules(ctx, cfg, config.RouteIDs(matches))
		if err != nil {
			a.logger.Error("module resolution failed", "path", loc.Pathname, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		src := a.wrapSource(moduleSource{global: cfg.GlobalLoader, modules: modules})
		global, results = loader.LoadAll(ctx, src, matches, loc, a.loadContext(r))

		outcome := reconcile(results)
		switch outcome.Type {
		case loader.TypeRedirect:
			// Short-circuit: no render, Location header plus a
			// human-readable placeholder body.
			w.Header().Set("Location", outcome.Location)
			w.WriteHeader(outcome.Status)
			fmt.Fprintf(w, "Redirecting to %s", outcome.Location)
			return
		case loader.TypeError:
			a.logger.Error("loader failed", "path", loc.Pathname, "status", outcome.Status, "error", outcome.Err)
			status = outcome.Status
			matches = syntheticMatches(ErrorRouteID, loc)
			results = []loader.Result{loader.Success(nil)}
		case loader.TypeChangeStatusCode:
			status = outcome.Status
			matches = syntheticMatches(StatusRouteID(outcome.Status), loc)
			results = []loader.Result{loader.Success(nil)}
		}
	}

	a.renderDocument(w, r, cfg, loc, status, matches, global, results)
}

// renderDocument resolves artifacts for the (possibly synthetic) match
// list, assembles the render context and writes the entry's output.
func (a *App) renderDocument(w http.ResponseWriter, r *http.Request, cfg *config.RemixConfig, loc router.Location, status int, matches []router.Match, global loader.Result, results []loader.Result) {
	ctx := r.Context()
	routeIDs := config.RouteIDs(matches)

	modules, err := a.artifacts.RouteModules(ctx, cfg, routeIDs)
	if err != nil {
		a.logger.Error("module resolution failed", "path", loc.Pathname, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	entry, err := a.artifacts.ServerEntry(ctx, cfg)
	if err != nil {
		a.logger.Error("server entry unavailable", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	full, err := a.artifacts.Manifest(ctx, cfg, routeIDs)
	if err != nil {
		a.logger.Error("manifest fetch failed", "path", loc.Pathname, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rc := render.NewContext(
		assets.Partial(full, documentKeys(routeIDs)),
		render.GlobalData(global),
		cfg.PublicPath,
		render.RouteData(matches, results),
		render.RouteManifest(matches),
		render.RouteParams(matches),
		modules,
	)

	body, err := entry.Render(r, status, rc)
	if err != nil {
		a.logger.Error("render failed", "path", loc.Pathname, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// =============================================================================
// Outcome Reconciliation
// =============================================================================

// reconcile collapses per-route results into the single outcome that
// decides the response, in strict priority: Redirect beats Error beats
// ChangeStatusCode beats plain success. Within one priority class the
// first result in match-list order wins; settle order of the concurrent
// loaders never influences the response. The global result does not
// participate.
func reconcile(results []loader.Result) loader.Result {
	for _, res := range results {
		if res.Type == loader.TypeRedirect {
			return res
		}
	}
	for _, res := range results {
		if res.Type == loader.TypeError {
			return res
		}
	}
	for _, res := range results {
		if res.Type == loader.TypeChangeStatusCode {
			return res
		}
	}
	return loader.Success(nil)
}

// =============================================================================
// Helpers
// =============================================================================

// moduleSource adapts resolved route modules plus the config's global
// loader into the loader invoker's Source.
type moduleSource struct {
	global  loader.Func
	modules render.RouteModules
}

func (s moduleSource) GlobalLoader() loader.Func { return s.global }

func (s moduleSource) RouteLoader(routeID string) loader.Func {
	mod, ok := s.modules[routeID]
	if !ok {
		return nil
	}
	return mod.Loader()
}

// wrapSource applies the configured source wrapper, if any.
func (a *App) wrapSource(src loader.Source) loader.Source {
	if a.config.WrapSource == nil {
		return src
	}
	return a.config.WrapSource(src)
}

// syntheticMatches builds the single-entry match list used for reserved
// error and status pages.
func syntheticMatches(routeID string, loc router.Location) []router.Match {
	return []router.Match{{
		Pathname: loc.Pathname,
		Params:   map[string]string{},
		Route:    &router.Route{ID: routeID},
	}}
}

// documentKeys is the exact manifest key set a document needs: the
// browser entry, the global stylesheet, and each matched route's module
// and stylesheet.
func documentKeys(routeIDs []string) []string {
	keys := []string{assets.EntryBrowserKey, assets.GlobalStylesKey}
	return append(keys, assets.RouteKeys(routeIDs)...)
}

// locationFromRequest builds the request-scoped location handed to
// loaders and the matcher.
func locationFromRequest(r *http.Request) router.Location {
	loc := router.Location{Pathname: r.URL.Path}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if r.URL.RawQuery != "" {
		loc.Search = "?" + r.URL.RawQuery
	}
	return loc
}

// loadContext builds the caller-supplied per-request loader context.
func (a *App) loadContext(r *http.Request) any {
	if a.config.LoadContext == nil {
		return nil
	}
	return a.config.LoadContext(r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
