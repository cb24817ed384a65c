package remix

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/remix-go/remix/internal/build"
	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/render"
	"github.com/remix-go/remix/pkg/router"
)

// =============================================================================
// Run Modes
// =============================================================================

// Mode selects how build artifacts are resolved.
type Mode string

const (
	// ModeDevelopment re-reads the config and replaces the module cache
	// on every request, and fetches manifests from the dev build server.
	ModeDevelopment Mode = "development"

	// ModeProduction loads precompiled artifacts once and serves them
	// read-only for the lifetime of the process.
	ModeProduction Mode = "production"
)

// =============================================================================
// Reserved Routes and Endpoints
// =============================================================================

// Reserved route ids substituted into the match list during outcome
// reconciliation. Applications provide modules under these ids to
// customize the corresponding pages.
const (
	// NotFoundRouteID renders when no route matches the request path.
	NotFoundRouteID = "routes/404"

	// ErrorRouteID renders when a loader produced an Error outcome.
	ErrorRouteID = "routes/500"
)

// StatusRouteID returns the reserved route id for a status-code
// override, e.g. "routes/401". Applications may register a module under
// it for a custom per-status page; ErrorRouteID is the generic fallback.
func StatusRouteID(code int) string {
	return "routes/" + strconv.Itoa(code)
}

// Endpoint prefixes classifying a request into data or manifest mode.
// Everything else is a full-document request.
const (
	// DataPrefix serves data-only JSON for client-side navigation.
	DataPrefix = "/__remix_data"

	// ManifestPrefix serves build and route manifests for client-side
	// refetches.
	ManifestPrefix = "/__remix_manifest"
)

// =============================================================================
// Config
// =============================================================================

// Config configures an App. The zero value is usable for tests that
// supply Artifacts directly; real applications set at least
// DefineRoutes, ServerEntry and Modules.
//
// Mode and Origin are explicit values threaded in at construction, never
// read from ambient process state, so behavior stays deterministic and
// testable.
type Config struct {
	// Mode selects artifact resolution. Empty defaults to
	// ModeProduction.
	Mode Mode

	// RootDirectory is the project root holding remix.config.json.
	// Empty means the current directory.
	RootDirectory string

	// Origin, when set, prefixes the public path with an absolute
	// origin (e.g. "https://cdn.example.com") so asset URLs resolve
	// cross-host.
	Origin string

	// DefineRoutes builds the route tree. Invoked on every config read,
	// which in development means every request.
	DefineRoutes func() []*router.Route

	// GlobalLoader is the root-level data loader, run for every
	// document and data request independent of route matches. May be
	// nil.
	GlobalLoader loader.Func

	// ServerEntry is the compiled server entry module. Required unless
	// Resolver or Artifacts is set.
	ServerEntry render.ServerEntry

	// Modules maps route ids to their modules. Required unless
	// Resolver or Artifacts is set.
	Modules render.RouteModules

	// Resolver overrides the static ServerEntry/Modules pair, letting
	// development setups re-resolve modules per request.
	Resolver build.ModuleResolver

	// ManifestSource overrides where the precompiled manifest is read
	// from (e.g. assets.S3Source). Nil reads the server build
	// directory.
	ManifestSource build.ManifestSource

	// Artifacts overrides the mode-selected artifact reader entirely.
	Artifacts build.Artifacts

	// WrapSource wraps the per-request loader source, e.g. with
	// middleware.LoaderMetrics to instrument loader invocations. Nil
	// leaves the source unwrapped.
	WrapSource func(src loader.Source) loader.Source

	// LoadContext builds the per-request value handed to every loader
	// (database handles, sessions). Nil means loaders receive nil.
	LoadContext func(r *http.Request) any

	// Logger receives structured request logs. Nil uses slog.Default.
	Logger *slog.Logger
}
