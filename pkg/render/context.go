package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/remix-go/remix/pkg/assets"
)

// Context is the assembled payload handed to the server entry's render
// function. Its JSON-tagged fields form the client-shared subset that
// gets embedded as an inline script; Serialize guarantees the output is
// safe inside a <script> element.
type Context struct {
	BrowserManifest assets.Manifest              `json:"browserManifest"`
	GlobalData      any                          `json:"globalData"`
	PublicPath      string                       `json:"publicPath"`
	RouteData       map[string]any               `json:"routeData"`
	RouteManifest   map[string]RouteDescriptor   `json:"routeManifest"`
	RouteParams     map[string]map[string]string `json:"routeParams"`

	// modules is the server-only lazy route-module accessor; it is
	// never serialized.
	modules RouteModules
}

// NewContext assembles a render context from its parts.
func NewContext(manifest assets.Manifest, globalData any, publicPath string, routeData map[string]any, routeManifest map[string]RouteDescriptor, routeParams map[string]map[string]string, modules RouteModules) *Context {
	return &Context{
		BrowserManifest: manifest,
		GlobalData:      globalData,
		PublicPath:      publicPath,
		RouteData:       routeData,
		RouteManifest:   routeManifest,
		RouteParams:     routeParams,
		modules:         modules,
	}
}

// Module returns the module for a route id, or nil when unresolved.
func (c *Context) Module(routeID string) Module {
	return c.modules[routeID]
}

// Serialize returns the client-shared subset as JSON that is safe to
// embed inline in a <script> element: "<", ">" and "&" are emitted as
// unicode escapes so no script-terminating sequence can appear. The
// encoder also escapes U+2028 and U+2029, keeping the payload valid as
// directly evaluated JavaScript.
func (c *Context) Serialize() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("serialize render context: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
