package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/remix-go/remix/pkg/router"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testRoutes() []*router.Route {
	return []*router.Route{
		{ID: "routes/posts", Path: "posts", Children: []*router.Route{
			{ID: "routes/posts/$id", Path: ":id"},
		}},
	}
}

func TestReadDefaults(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(testRoutes, nil)

	cfg, err := l.Read(dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.PublicPath != DefaultPublicPath {
		t.Errorf("PublicPath = %q, want %q", cfg.PublicPath, DefaultPublicPath)
	}
	if cfg.DevServerPort != DefaultDevServerPort {
		t.Errorf("DevServerPort = %d, want %d", cfg.DevServerPort, DefaultDevServerPort)
	}
	if cfg.ServerBuildDirectory != filepath.Join(dir, DefaultServerBuildDirectory) {
		t.Errorf("ServerBuildDirectory = %q", cfg.ServerBuildDirectory)
	}
	if cfg.RootDirectory != dir {
		t.Errorf("RootDirectory = %q, want %q", cfg.RootDirectory, dir)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"publicPath":"https://cdn.example.com/assets","devServerPort":9100}`)
	l := NewLoader(testRoutes, nil)

	cfg, err := l.Read(dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.PublicPath != "https://cdn.example.com/assets/" {
		t.Errorf("PublicPath = %q, want trailing slash applied", cfg.PublicPath)
	}
	if cfg.DevServerPort != 9100 {
		t.Errorf("DevServerPort = %d, want 9100", cfg.DevServerPort)
	}
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", `{"devServerPort":70000}`},
		{"bad public path", `{"publicPath":"build/"}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		writeConfig(t, dir, tt.content)
		if _, err := NewLoader(testRoutes, nil).Read(dir); err == nil {
			t.Errorf("%s: Read should fail", tt.name)
		}
	}
}

func TestReadAssignsParents(t *testing.T) {
	cfg, err := NewLoader(testRoutes, nil).Read(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	child := cfg.Routes[0].Children[0]
	if child.ParentID != "routes/posts" {
		t.Errorf("ParentID = %q, want %q", child.ParentID, "routes/posts")
	}
	if cfg.Routes[0].ParentID != "" {
		t.Errorf("root ParentID = %q, want empty", cfg.Routes[0].ParentID)
	}
}

func TestReadRejectsDuplicateIDs(t *testing.T) {
	dup := func() []*router.Route {
		return []*router.Route{{ID: "a", Path: "x"}, {ID: "a", Path: "y"}}
	}
	_, err := NewLoader(dup, nil).Read(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "route tree") {
		t.Errorf("Read() error = %v, want route tree validation failure", err)
	}
}

func TestReadFreshTreePerRead(t *testing.T) {
	l := NewLoader(testRoutes, nil)
	dir := t.TempDir()
	a, _ := l.Read(dir)
	b, _ := l.Read(dir)
	if a.Routes[0] == b.Routes[0] {
		t.Error("each Read should build a fresh route tree")
	}
}
