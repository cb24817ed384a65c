package build

import (
	"context"
	"fmt"
	"sync"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/pkg/assets"
	"github.com/remix-go/remix/pkg/render"
)

// ManifestSource supplies the full precompiled manifest. DirSource
// reads the build directory; assets.S3Source satisfies this for remote
// artifacts.
type ManifestSource interface {
	Fetch(ctx context.Context) (assets.Manifest, error)
}

// DirSource reads manifest.json from a local build directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(ctx context.Context) (assets.Manifest, error) {
	return assets.Load(s.Dir)
}

// Precompiled serves build artifacts from a fixed layout. The manifest
// and the modules are loaded once and are read-only afterwards.
type Precompiled struct {
	resolver ModuleResolver
	source   ManifestSource

	manifestOnce sync.Once
	manifest     assets.Manifest
	manifestErr  error

	modulesOnce sync.Once
	cache       *ModuleCache
	modulesErr  error
}

// NewPrecompiled creates the production-mode artifact reader. A nil
// source defaults to the config's server build directory at first use.
func NewPrecompiled(resolver ModuleResolver, source ManifestSource) *Precompiled {
	return &Precompiled{
		resolver: resolver,
		source:   source,
		cache:    NewModuleCache(),
	}
}

func (p *Precompiled) Manifest(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (assets.Manifest, error) {
	p.manifestOnce.Do(func() {
		source := p.source
		if source == nil {
			source = DirSource{Dir: cfg.ServerBuildDirectory}
		}
		p.manifest, p.manifestErr = source.Fetch(ctx)
	})
	return p.manifest, p.manifestErr
}

func (p *Precompiled) ServerEntry(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, error) {
	if err := p.loadModules(ctx, cfg); err != nil {
		return nil, err
	}
	entry := p.cache.Entry()
	if entry == nil {
		return nil, fmt.Errorf("no server entry registered")
	}
	return entry, nil
}

func (p *Precompiled) RouteModules(ctx context.Context, cfg *config.RemixConfig, routeIDs []string) (render.RouteModules, error) {
	if err := p.loadModules(ctx, cfg); err != nil {
		return nil, err
	}
	return selectModules(p.cache.Modules(), routeIDs), nil
}

func (p *Precompiled) loadModules(ctx context.Context, cfg *config.RemixConfig) error {
	p.modulesOnce.Do(func() {
		entry, modules, err := p.resolver.Resolve(ctx, cfg)
		if err != nil {
			p.modulesErr = fmt.Errorf("resolve modules: %w", err)
			return
		}
		p.cache.ReplaceAll(entry, modules)
	})
	return p.modulesErr
}
