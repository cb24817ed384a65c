// Package assets models the browser build manifest: the mapping from
// asset keys to fingerprinted build outputs.
//
// Keys are route ids, per-route style keys ("style/<id>.css"), or the
// well-known entry names. The manifest's source of truth is either a
// precompiled artifact on disk (or S3) or a freshly generated dev
// build; this package only reads and filters, it never mutates.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known manifest keys assembled into every HTML response.
const (
	// EntryBrowserKey is the browser entry point bundle.
	EntryBrowserKey = "entry-browser"

	// GlobalStylesKey is the global stylesheet.
	GlobalStylesKey = "global.css"
)

// ManifestFileName is the name of the on-disk manifest artifact.
const ManifestFileName = "manifest.json"

// Asset describes one build output.
type Asset struct {
	// FileName is the fingerprinted output file, relative to the
	// public path (e.g. "routes/posts/$id-ab12cd34.js").
	FileName string `json:"fileName"`
}

// Manifest maps asset keys to their build outputs.
type Manifest map[string]Asset

// Partial narrows a manifest to the requested keys. Keys absent from
// the manifest are silently omitted; the caller assembles the exact key
// set it wants and tolerates the absence of any one of them.
func Partial(m Manifest, keys []string) Manifest {
	partial := make(Manifest, len(keys))
	for _, key := range keys {
		if asset, ok := m[key]; ok {
			partial[key] = asset
		}
	}
	return partial
}

// StyleKey returns the manifest key for a route's stylesheet.
func StyleKey(routeID string) string {
	return "style/" + routeID + ".css"
}

// RouteKeys returns the manifest keys for a set of route ids: each id
// plus its style key.
func RouteKeys(routeIDs []string) []string {
	keys := make([]string, 0, 2*len(routeIDs))
	for _, id := range routeIDs {
		keys = append(keys, id, StyleKey(id))
	}
	return keys
}

// Load reads a manifest.json from the given build directory.
func Load(buildDir string) (Manifest, error) {
	path := filepath.Join(buildDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest JSON.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse build manifest: %w", err)
	}
	return m, nil
}
