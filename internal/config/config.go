package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file, resolved
	// relative to the project root.
	ConfigFileName = "remix.config.json"

	// DefaultPublicPath is where browser assets are served from.
	DefaultPublicPath = "/build/"

	// DefaultServerBuildDirectory holds precompiled build artifacts.
	DefaultServerBuildDirectory = "build"

	// DefaultAppDirectory holds the application source consumed by
	// the dev builder.
	DefaultAppDirectory = "app"

	// DefaultDevServerPort is the dev build server port.
	DefaultDevServerPort = 8002
)

// RemixConfig is the loaded, validated configuration for one request
// cycle. Live mode re-reads it per request and treats the result as a
// full replacement; nothing here is mutated after Read returns.
type RemixConfig struct {
	// Routes is the route tree, freshly built by the definer.
	Routes []*router.Route

	// GlobalLoader is the root-level data loader, independent of any
	// route match. May be nil.
	GlobalLoader loader.Func

	// PublicPath is the URL prefix for browser assets.
	PublicPath string

	// RootDirectory is the project root the config was read from.
	RootDirectory string

	// ServerBuildDirectory holds precompiled artifacts, relative to
	// the root unless absolute.
	ServerBuildDirectory string

	// AppDirectory holds application sources, relative to the root
	// unless absolute.
	AppDirectory string

	// DevServerPort is where the dev build server listens.
	DevServerPort int
}

// fileConfig is the remix.config.json schema.
type fileConfig struct {
	PublicPath           string `json:"publicPath,omitempty"`
	ServerBuildDirectory string `json:"serverBuildDirectory,omitempty"`
	AppDirectory         string `json:"appDirectory,omitempty"`
	DevServerPort        int    `json:"devServerPort,omitempty"`
}

func (fc fileConfig) validate() error {
	return validation.ValidateStruct(&fc,
		validation.Field(&fc.DevServerPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&fc.PublicPath, validation.By(validPublicPath)),
	)
}

func validPublicPath(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return nil
	}
	return fmt.Errorf("must start with /, http:// or https://")
}

// Loader reads RemixConfig from a project root. The route definer runs
// on every Read so live mode always sees a fresh tree.
type Loader struct {
	defineRoutes func() []*router.Route
	globalLoader loader.Func
}

// NewLoader creates a config loader. defineRoutes may be nil, which
// yields an empty route tree (every document request becomes a 404).
func NewLoader(defineRoutes func() []*router.Route, globalLoader loader.Func) *Loader {
	return &Loader{defineRoutes: defineRoutes, globalLoader: globalLoader}
}

// Read loads remix.config.json from rootDir, applies defaults,
// validates, and builds the route tree. A missing config file is not an
// error: defaults apply.
func (l *Loader) Read(rootDir string) (*RemixConfig, error) {
	var fc fileConfig
	path := filepath.Join(rootDir, ConfigFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
		}
	}

	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	cfg := &RemixConfig{
		GlobalLoader:         l.globalLoader,
		PublicPath:           fc.PublicPath,
		RootDirectory:        rootDir,
		ServerBuildDirectory: fc.ServerBuildDirectory,
		AppDirectory:         fc.AppDirectory,
		DevServerPort:        fc.DevServerPort,
	}
	applyDefaults(cfg)

	if l.defineRoutes != nil {
		cfg.Routes = l.defineRoutes()
	}
	assignParents(cfg.Routes, "")
	if err := router.Validate(cfg.Routes); err != nil {
		return nil, fmt.Errorf("invalid route tree: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *RemixConfig) {
	if cfg.PublicPath == "" {
		cfg.PublicPath = DefaultPublicPath
	}
	if !strings.HasSuffix(cfg.PublicPath, "/") {
		cfg.PublicPath += "/"
	}
	if cfg.ServerBuildDirectory == "" {
		cfg.ServerBuildDirectory = DefaultServerBuildDirectory
	}
	if !filepath.IsAbs(cfg.ServerBuildDirectory) {
		cfg.ServerBuildDirectory = filepath.Join(cfg.RootDirectory, cfg.ServerBuildDirectory)
	}
	if cfg.AppDirectory == "" {
		cfg.AppDirectory = DefaultAppDirectory
	}
	if !filepath.IsAbs(cfg.AppDirectory) {
		cfg.AppDirectory = filepath.Join(cfg.RootDirectory, cfg.AppDirectory)
	}
	if cfg.DevServerPort == 0 {
		cfg.DevServerPort = DefaultDevServerPort
	}
}

// assignParents fills in ParentID across the tree.
func assignParents(routes []*router.Route, parentID string) {
	for _, r := range routes {
		r.ParentID = parentID
		assignParents(r.Children, r.ID)
	}
}

// RouteIDs returns the ids of a match set in order.
func RouteIDs(matches []router.Match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Route.ID
	}
	return ids
}
