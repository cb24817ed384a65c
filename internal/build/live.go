package build

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/pkg/assets"
	"github.com/remix-go/remix/pkg/render"
)

// ManifestPath is the dev build server endpoint serving fresh
// manifests. The routes query parameter limits the rebuild to the
// currently matched routes.
const ManifestPath = "/__build_manifest"

// Live resolves artifacts against a running dev build server. Every
// request re-resolves modules into the cache (a full replacement) and
// fetches a manifest built on demand for just the matched routes.
type Live struct {
	resolver ModuleResolver
	cache    *ModuleCache
	client   *http.Client

	// BaseURL overrides the dev server address, normally derived from
	// the config's DevServerPort. Tests point it at an httptest server.
	BaseURL string
}

// NewLive creates the development-mode artifact reader.
func NewLive(resolver ModuleResolver) *Live {
	return &Live{
		resolver: resolver,
		cache:    NewModuleCache(),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Refresh purges and reloads the module cache. The dispatcher calls it
// once at the top of every live-mode request, before matching.
func (l *Live) Refresh(ctx context.Context, cfg *config.RemixConfig) error {
	entry, modules, err := l.resolver.Resolve(ctx, cfg)
	if err != nil {
		return fmt.Errorf("resolve modules: %w", err)
	}
	l.cache.ReplaceAll(entry, modules)
	return nil
}

// Manifest asks the dev build server for a manifest covering routeIDs.
// The caller decides whether a failure is fatal (HTML documents) or
// degradable (manifest refetches).
func (l *Live) Manifest(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (assets.Manifest, error) {
	u := l.manifestURL(cfg, routeIDs)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dev server unavailable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dev server returned %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dev manifest: %w", err)
	}
	return assets.Parse(data)
}

func (l *Live) ServerEntry(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, error) {
	entry := l.cache.Entry()
	if entry == nil {
		if err := l.Refresh(ctx, cfg); err != nil {
			return nil, err
		}
		entry = l.cache.Entry()
	}
	if entry == nil {
		return nil, fmt.Errorf("no server entry registered")
	}
	return entry, nil
}

func (l *Live) RouteModules(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (render.RouteModules, error) {
	modules := l.cache.Modules()
	if modules == nil {
		if err := l.Refresh(ctx, cfg); err != nil {
			return nil, err
		}
		modules = l.cache.Modules()
	}
	return selectModules(modules, routeIDs), nil
}

func (l *Live) manifestURL(cfg *config.RemixConfig, routeIDs []string) string {
	base := l.BaseURL
	if base == "" {
		base = fmt.Sprintf("http://localhost:%d", cfg.DevServerPort)
	}
	q := url.Values{}
	if len(routeIDs) > 0 {
		q.Set("routes", strings.Join(routeIDs, ","))
	}
	u := base + ManifestPath
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
