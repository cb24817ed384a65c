package render

import (
	"errors"
	"reflect"
	"testing"

	"github.com/remix-go/remix/pkg/loader"
	"github.com/remix-go/remix/pkg/router"
)

func testMatches() []router.Match {
	posts := &router.Route{ID: "routes/posts", Path: "posts"}
	post := &router.Route{ID: "routes/posts/$id", Path: ":id", ParentID: "routes/posts"}
	return []router.Match{
		{Pathname: "/posts", Params: map[string]string{}, Route: posts},
		{Pathname: "/posts/1", Params: map[string]string{"id": "1"}, Route: post},
	}
}

func TestGlobalData(t *testing.T) {
	payload := map[string]any{"user": "ann"}
	if got := GlobalData(loader.Success(payload)); !reflect.DeepEqual(got, payload) {
		t.Errorf("GlobalData(success) = %v", got)
	}
	if got := GlobalData(loader.Failure(500, errors.New("x"))); got != nil {
		t.Errorf("GlobalData(error) = %v, want nil", got)
	}
}

func TestRouteData(t *testing.T) {
	matches := testMatches()
	results := []loader.Result{
		loader.Success("posts-data"),
		loader.Failure(500, errors.New("x")),
	}
	data := RouteData(matches, results)
	if data["routes/posts"] != "posts-data" {
		t.Errorf("routeData = %v", data)
	}
	if _, ok := data["routes/posts/$id"]; ok {
		t.Error("non-Success results must contribute no entry")
	}
}

func TestRouteManifest(t *testing.T) {
	manifest := RouteManifest(testMatches())
	want := RouteDescriptor{ID: "routes/posts/$id", ParentID: "routes/posts", Path: ":id"}
	if manifest["routes/posts/$id"] != want {
		t.Errorf("descriptor = %+v, want %+v", manifest["routes/posts/$id"], want)
	}
	if len(manifest) != 2 {
		t.Errorf("len(manifest) = %d, want 2", len(manifest))
	}
}

func TestRouteParams(t *testing.T) {
	params := RouteParams(testMatches())
	if params["routes/posts/$id"]["id"] != "1" {
		t.Errorf("params = %v", params)
	}
	// Total even with nil params.
	nilParams := RouteParams([]router.Match{{Route: &router.Route{ID: "x"}}})
	if nilParams["x"] == nil {
		t.Error("RouteParams should substitute an empty map for nil")
	}
}
