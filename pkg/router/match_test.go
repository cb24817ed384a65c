package router

import (
	"testing"
)

// testTree builds a representative nested route tree.
func testTree() []*Route {
	return []*Route{
		{ID: "routes/index", Path: ""},
		{ID: "routes/about", Path: "about"},
		{ID: "routes/posts", Path: "posts", Children: []*Route{
			{ID: "routes/posts/index", Path: ""},
			{ID: "routes/posts/new", Path: "new"},
			{ID: "routes/posts/$id", Path: ":id", Children: []*Route{
				{ID: "routes/posts/$id/index", Path: ""},
				{ID: "routes/posts/$id/edit", Path: "edit"},
			}},
		}},
		{ID: "routes/docs", Path: "docs/*"},
	}
}

func matchedIDs(matches []Match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Route.ID
	}
	return ids
}

func TestMatchStatic(t *testing.T) {
	matches := MatchRoutes(testTree(), "/about")
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Route.ID != "routes/about" {
		t.Errorf("route id = %q, want %q", matches[0].Route.ID, "routes/about")
	}
	if matches[0].Pathname != "/about" {
		t.Errorf("pathname = %q, want %q", matches[0].Pathname, "/about")
	}
}

func TestMatchNested(t *testing.T) {
	matches := MatchRoutes(testTree(), "/posts/123/edit")
	want := []string{"routes/posts", "routes/posts/$id", "routes/posts/$id/edit"}
	got := matchedIDs(matches)
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	// Params flow down to child matches.
	if matches[2].Params["id"] != "123" {
		t.Errorf("params[id] = %q, want %q", matches[2].Params["id"], "123")
	}
	if matches[2].Pathname != "/posts/123/edit" {
		t.Errorf("pathname = %q, want %q", matches[2].Pathname, "/posts/123/edit")
	}
}

func TestMatchIndexRoute(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"routes/index"}},
		{"/posts", []string{"routes/posts", "routes/posts/index"}},
		{"/posts/7", []string{"routes/posts", "routes/posts/$id", "routes/posts/$id/index"}},
	}
	for _, tt := range tests {
		got := matchedIDs(MatchRoutes(testTree(), tt.path))
		if len(got) != len(tt.want) {
			t.Errorf("MatchRoutes(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("MatchRoutes(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMatchStaticOutranksParam(t *testing.T) {
	matches := MatchRoutes(testTree(), "/posts/new")
	got := matchedIDs(matches)
	if len(got) != 2 || got[1] != "routes/posts/new" {
		t.Fatalf("MatchRoutes(/posts/new) = %v, want static route to win", got)
	}
}

func TestMatchFirstDeclaredWins(t *testing.T) {
	routes := []*Route{
		{ID: "first", Path: ":a"},
		{ID: "second", Path: ":b"},
	}
	matches := MatchRoutes(routes, "/x")
	if len(matches) != 1 || matches[0].Route.ID != "first" {
		t.Fatalf("matches = %v, want first-declared route", matchedIDs(matches))
	}
}

func TestMatchCatchAll(t *testing.T) {
	matches := MatchRoutes(testTree(), "/docs/guides/routing")
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Params["*"] != "guides/routing" {
		t.Errorf("splat = %q, want %q", matches[0].Params["*"], "guides/routing")
	}
}

func TestMatchNoMatch(t *testing.T) {
	tests := []string{"/missing", "/posts/1/delete", "/about/extra"}
	for _, path := range tests {
		if matches := MatchRoutes(testTree(), path); matches != nil {
			t.Errorf("MatchRoutes(%q) = %v, want nil", path, matchedIDs(matches))
		}
	}
}

func TestMatchDecodesParams(t *testing.T) {
	routes := []*Route{{ID: "routes/tags/$tag", Path: "tags/:tag"}}
	matches := MatchRoutes(routes, "/tags/hello%20world")
	if len(matches) != 1 {
		t.Fatalf("expected a match")
	}
	if got := matches[0].Params["tag"]; got != "hello world" {
		t.Errorf("params[tag] = %q, want %q", got, "hello world")
	}
}

// TestMatchParamsConsistent verifies that every match's extracted params
// line up with the placeholders its own pattern declares.
func TestMatchParamsConsistent(t *testing.T) {
	paths := []string{"/", "/about", "/posts", "/posts/42", "/posts/42/edit", "/docs/a/b/c"}
	for _, path := range paths {
		prev := map[string]string{}
		for _, m := range MatchRoutes(testTree(), path) {
			for _, seg := range splitPath(m.Route.Path) {
				switch {
				case isCatchAll(seg):
					name := seg[1:]
					if name == "" {
						name = "*"
					}
					if _, ok := m.Params[name]; !ok {
						t.Errorf("path %q route %q: missing splat param %q", path, m.Route.ID, name)
					}
				case seg[0] == ':':
					if _, ok := m.Params[seg[1:]]; !ok {
						t.Errorf("path %q route %q: missing param %q", path, m.Route.ID, seg[1:])
					}
				}
			}
			// Ancestor params must be preserved.
			for k, v := range prev {
				if m.Params[k] != v {
					t.Errorf("path %q route %q: lost ancestor param %q", path, m.Route.ID, k)
				}
			}
			prev = m.Params
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(testTree()); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	dup := []*Route{{ID: "a", Path: "x"}, {ID: "a", Path: "y"}}
	if err := Validate(dup); err == nil {
		t.Error("Validate should reject duplicate ids")
	}

	midSplat := []*Route{{ID: "a", Path: "files/*", Children: []*Route{{ID: "b", Path: "x"}}}}
	if err := Validate(midSplat); err == nil {
		t.Error("Validate should reject non-terminal catch-all")
	}
}

func TestLeftmostStaticWins(t *testing.T) {
	// "a/:b" and ":a/b" carry the same overall weight; the ranking
	// compares segments from the left, so the pattern with the static
	// first segment wins even when declared second.
	routes := []*Route{
		{ID: "param-first", Path: ":a/b"},
		{ID: "static-first", Path: "a/:b"},
	}

	matches := MatchRoutes(routes, "/a/b")
	if len(matches) != 1 || matches[0].Route.ID != "static-first" {
		t.Fatalf("matched %v, want static-first", matchedIDs(matches))
	}
	if matches[0].Params["b"] != "b" {
		t.Errorf("params = %v, want b=b", matches[0].Params)
	}
}

func TestMatchDoesNotMutateTree(t *testing.T) {
	tree := testTree()
	MatchRoutes(tree, "/posts/1/edit")
	MatchRoutes(tree, "/nope")

	if len(tree[2].Children) != 3 {
		t.Error("matching mutated the shared tree")
	}
	if tree[2].Children[2].ID != "routes/posts/$id" {
		t.Error("matching reordered sibling routes")
	}
}
