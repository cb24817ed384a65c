package build

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/pkg/assets"
	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/render"
)

func nopEntry() render.ServerEntry {
	return render.ServerEntryFunc(func(r *http.Request, status int, rc *render.Context) ([]byte, error) {
		return []byte("<html></html>"), nil
	})
}

func nopModule() render.Module {
	return render.ModuleFunc(func(ctx context.Context, args loader.Args) (any, error) {
		return nil, nil
	})
}

func testConfig(t *testing.T) *config.RemixConfig {
	t.Helper()
	cfg, err := config.NewLoader(nil, nil).Read(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestModuleCacheReplaceAll(t *testing.T) {
	cache := NewModuleCache()
	if cache.Entry() != nil || cache.Modules() != nil {
		t.Fatal("fresh cache should be empty")
	}

	first := render.RouteModules{"a": nopModule()}
	cache.ReplaceAll(nopEntry(), first)
	if cache.Modules()["a"] == nil {
		t.Error("cache missing module after replace")
	}

	// Replacement is total: the old generation disappears.
	cache.ReplaceAll(nopEntry(), render.RouteModules{"b": nopModule()})
	if cache.Modules()["a"] != nil {
		t.Error("stale module survived ReplaceAll")
	}
	if cache.Modules()["b"] == nil {
		t.Error("new module missing after ReplaceAll")
	}
}

func TestPrecompiledManifestLoadOnce(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.ServerBuildDirectory, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.ServerBuildDirectory, assets.ManifestFileName)
	if err := os.WriteFile(path, []byte(`{"entry-browser":{"fileName":"e.js"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPrecompiled(StaticResolver(nopEntry(), render.RouteModules{}), nil)
	m, err := p.Manifest(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if m[assets.EntryBrowserKey].FileName != "e.js" {
		t.Errorf("manifest = %+v", m)
	}

	// The artifact is read-only for the process: deleting the file
	// must not affect subsequent reads.
	os.Remove(path)
	if m2, err := p.Manifest(context.Background(), cfg, nil); err != nil || m2[assets.EntryBrowserKey].FileName != "e.js" {
		t.Errorf("second Manifest() = %v, %v; want cached artifact", m2, err)
	}
}

func TestPrecompiledResolvesOnce(t *testing.T) {
	var calls atomic.Int32
	resolver := ResolverFunc(func(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error) {
		calls.Add(1)
		return nopEntry(), render.RouteModules{"a": nopModule(), "b": nopModule()}, nil
	})
	p := NewPrecompiled(resolver, DirSource{Dir: t.TempDir()})
	cfg := testConfig(t)

	if _, err := p.ServerEntry(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	mods, err := p.RouteModules(context.Background(), cfg, []string{"a", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != 1 || mods["a"] == nil {
		t.Errorf("modules = %v, want only registered ids", mods)
	}
	if calls.Load() != 1 {
		t.Errorf("resolver ran %d times, want 1", calls.Load())
	}
}

func TestLiveManifestFetch(t *testing.T) {
	var gotRoutes string
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ManifestPath {
			http.NotFound(w, r)
			return
		}
		gotRoutes = r.URL.Query().Get("routes")
		w.Write([]byte(`{"routes/a":{"fileName":"a-1234.js"}}`))
	}))
	defer dev.Close()

	l := NewLive(StaticResolver(nopEntry(), render.RouteModules{}))
	l.BaseURL = dev.URL

	m, err := l.Manifest(context.Background(), testConfig(t), []string{"routes/a", "routes/b"})
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if gotRoutes != "routes/a,routes/b" {
		t.Errorf("routes param = %q", gotRoutes)
	}
	if m["routes/a"].FileName != "a-1234.js" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestLiveManifestUnavailable(t *testing.T) {
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dev.Close() // immediately: connection refused

	l := NewLive(StaticResolver(nopEntry(), render.RouteModules{}))
	l.BaseURL = dev.URL

	if _, err := l.Manifest(context.Background(), testConfig(t), nil); err == nil {
		t.Error("Manifest should fail when the dev server is down")
	}
}

func TestLiveRefreshReplaces(t *testing.T) {
	generation := atomic.Int32{}
	resolver := ResolverFunc(func(ctx context.Context, cfg *config.RemixConfig) (render.ServerEntry, render.RouteModules, error) {
		gen := generation.Add(1)
		mods := render.RouteModules{}
		if gen == 1 {
			mods["old"] = nopModule()
		} else {
			mods["new"] = nopModule()
		}
		return nopEntry(), mods, nil
	})

	l := NewLive(resolver)
	cfg := testConfig(t)
	ctx := context.Background()

	if err := l.Refresh(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	if mods, _ := l.RouteModules(ctx, cfg, []string{"old"}); mods["old"] == nil {
		t.Fatal("first generation missing")
	}

	if err := l.Refresh(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	mods, _ := l.RouteModules(ctx, cfg, []string{"old", "new"})
	if mods["old"] != nil {
		t.Error("stale module survived refresh")
	}
	if mods["new"] == nil {
		t.Error("new generation missing after refresh")
	}
}
