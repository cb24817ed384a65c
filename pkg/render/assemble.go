package render

import (
	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/router"
)

// RouteDescriptor is the minimal per-route record the client router
// needs to reconstruct the match tree without re-matching.
type RouteDescriptor struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Path     string `json:"path"`
}

// GlobalData projects the global loader outcome: the Success payload,
// or nil when the global loader did not succeed.
func GlobalData(result loader.Result) any {
	if result.Type != loader.TypeSuccess {
		return nil
	}
	return result.Data
}

// RouteData maps route ids to their loader payloads. Only Success
// results contribute an entry; non-Success outcomes were already
// resolved upstream by the dispatcher.
func RouteData(matches []router.Match, results []loader.Result) map[string]any {
	data := make(map[string]any, len(matches))
	for i, m := range matches {
		if i >= len(results) {
			break
		}
		if results[i].Type == loader.TypeSuccess {
			data[m.Route.ID] = results[i].Data
		}
	}
	return data
}

// RouteManifest maps route ids to their descriptors.
func RouteManifest(matches []router.Match) map[string]RouteDescriptor {
	manifest := make(map[string]RouteDescriptor, len(matches))
	for _, m := range matches {
		manifest[m.Route.ID] = RouteDescriptor{
			ID:       m.Route.ID,
			ParentID: m.Route.ParentID,
			Path:     m.Route.Path,
		}
	}
	return manifest
}

// RouteParams maps route ids to the params extracted for that route.
func RouteParams(matches []router.Match) map[string]map[string]string {
	params := make(map[string]map[string]string, len(matches))
	for _, m := range matches {
		p := m.Params
		if p == nil {
			p = map[string]string{}
		}
		params[m.Route.ID] = p
	}
	return params
}
