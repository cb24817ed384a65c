package remix

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/remix-go/remix/internal/build"
	"github.com/remix-go/remix/internal/config"
)

// =============================================================================
// App Type
// =============================================================================

// App is the request dispatcher: an http.Handler that classifies every
// request into one of three modes (full HTML document, data-only JSON,
// manifest-only JSON) and drives matching, loading, reconciliation and
// rendering.
type App struct {
	config    Config
	artifacts build.Artifacts
	loader    *config.Loader
	logger    *slog.Logger
	mux       chi.Router

	// Production config is read once and shared read-only; development
	// re-reads per request.
	prodOnce sync.Once
	prodCfg  *config.RemixConfig
	prodErr  error
}

// New creates an App from the given configuration.
func New(cfg Config) *App {
	if cfg.Mode == "" {
		cfg.Mode = ModeProduction
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		config:    cfg,
		artifacts: selectArtifacts(cfg),
		loader:    config.NewLoader(cfg.DefineRoutes, cfg.GlobalLoader),
		logger:    logger,
	}

	mux := chi.NewRouter()
	mux.Get(DataPrefix, app.handleData)
	mux.Get(DataPrefix+"/*", app.handleData)
	mux.Get(ManifestPrefix, app.handleManifest)
	mux.Get(ManifestPrefix+"/*", app.handleManifest)
	mux.NotFound(app.handleDocument)
	app.mux = mux

	return app
}

// selectArtifacts picks the artifact reader for the configured mode. An
// explicit Artifacts value wins; otherwise the resolver (static by
// default) is wrapped in the live or precompiled reader.
func selectArtifacts(cfg Config) build.Artifacts {
	if cfg.Artifacts != nil {
		return cfg.Artifacts
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = build.StaticResolver(cfg.ServerEntry, cfg.Modules)
	}
	if cfg.Mode == ModeDevelopment {
		return build.NewLive(resolver)
	}
	return build.NewPrecompiled(resolver, cfg.ManifestSource)
}

// =============================================================================
// http.Handler Implementation
// =============================================================================

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// =============================================================================
// Per-Request Configuration
// =============================================================================

// requestConfig returns the config for one request cycle. Development
// re-reads it (and replaces the module cache) before matching so route
// and module edits take effect immediately; production reads once.
func (a *App) requestConfig(ctx context.Context) (*config.RemixConfig, error) {
	if a.config.Mode == ModeDevelopment {
		cfg, err := a.loader.Read(a.config.RootDirectory)
		if err != nil {
			return nil, err
		}
		a.applyOrigin(cfg)
		if live, ok := a.artifacts.(*build.Live); ok {
			if err := live.Refresh(ctx, cfg); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}

	a.prodOnce.Do(func() {
		a.prodCfg, a.prodErr = a.loader.Read(a.config.RootDirectory)
		if a.prodErr == nil {
			a.applyOrigin(a.prodCfg)
		}
	})
	return a.prodCfg, a.prodErr
}

// applyOrigin makes the public path absolute when an origin is
// configured, so asset URLs resolve from another host.
func (a *App) applyOrigin(cfg *config.RemixConfig) {
	if a.config.Origin == "" {
		return
	}
	cfg.PublicPath = strings.TrimSuffix(a.config.Origin, "/") + cfg.PublicPath
}
