package dev

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/remix-go/remix/pkg/assets"
)

// Builder produces manifest entries for route modules. Outputs are
// fingerprinted with a content hash so the browser cache busts on
// change; sources that do not exist on disk yet are fingerprinted from
// their id, which keeps scaffolded routes loadable.
type Builder struct {
	// AppDir is the application source directory.
	AppDir string
}

// NewBuilder creates a builder over the given app directory.
func NewBuilder(appDir string) *Builder {
	return &Builder{AppDir: appDir}
}

// Build produces a manifest covering routeIDs plus the well-known
// entries every document needs.
func (b *Builder) Build(routeIDs []string) (assets.Manifest, error) {
	m := make(assets.Manifest, 2*len(routeIDs)+2)

	entry, err := b.buildOne(assets.EntryBrowserKey, "entry-browser.go", ".js")
	if err != nil {
		return nil, err
	}
	m[assets.EntryBrowserKey] = entry

	if global, err := b.buildOptional(assets.GlobalStylesKey, "global.css", ".css"); err == nil {
		m[assets.GlobalStylesKey] = global
	}

	for _, id := range routeIDs {
		js, err := b.buildOne(id, id+".go", ".js")
		if err != nil {
			return nil, fmt.Errorf("build route %q: %w", id, err)
		}
		m[id] = js

		if css, err := b.buildOptional(assets.StyleKey(id), id+".css", ".css"); err == nil {
			m[assets.StyleKey(id)] = css
		}
	}
	return m, nil
}

// buildOne fingerprints a source file, falling back to the key when the
// file does not exist.
func (b *Builder) buildOne(key, source, ext string) (assets.Asset, error) {
	sum, err := b.fingerprint(source)
	if err != nil {
		sum = fingerprintBytes([]byte(key))
	}
	return assets.Asset{FileName: key + "-" + sum + ext}, nil
}

// buildOptional fingerprints a source that may legitimately be absent,
// e.g. a route without a stylesheet.
func (b *Builder) buildOptional(key, source, ext string) (assets.Asset, error) {
	sum, err := b.fingerprint(source)
	if err != nil {
		return assets.Asset{}, err
	}
	return assets.Asset{FileName: key + "-" + sum + ext}, nil
}

func (b *Builder) fingerprint(source string) (string, error) {
	path := filepath.Join(b.AppDir, filepath.FromSlash(source))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fingerprintBytes(data), nil
}

func fingerprintBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:4])
}

// SplitRouteIDs parses the comma-separated routes query parameter.
func SplitRouteIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
