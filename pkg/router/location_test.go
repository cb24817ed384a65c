package router

import "testing"

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw      string
		pathname string
		search   string
		hash     string
	}{
		{"/posts/1?sort=asc#top", "/posts/1", "?sort=asc", "#top"},
		{"/posts", "/posts", "", ""},
		{"", "/", "", ""},
		{"?q=go", "/", "?q=go", ""},
	}
	for _, tt := range tests {
		loc := ParseLocation(tt.raw)
		if loc.Pathname != tt.pathname {
			t.Errorf("ParseLocation(%q).Pathname = %q, want %q", tt.raw, loc.Pathname, tt.pathname)
		}
		if loc.Search != tt.search {
			t.Errorf("ParseLocation(%q).Search = %q, want %q", tt.raw, loc.Search, tt.search)
		}
		if loc.Hash != tt.hash {
			t.Errorf("ParseLocation(%q).Hash = %q, want %q", tt.raw, loc.Hash, tt.hash)
		}
	}
}

func TestLocationRoundTrip(t *testing.T) {
	raws := []string{"/posts/1?sort=asc#top", "/", "/a/b"}
	for _, raw := range raws {
		loc := ParseLocation(raw)
		if got := loc.String(); got != raw {
			t.Errorf("round trip %q = %q", raw, got)
		}
	}
}

func TestLocationWithKey(t *testing.T) {
	loc := ParseLocation("/posts").WithKey()
	if loc.Key == "" {
		t.Error("WithKey should assign a key")
	}
	other := ParseLocation("/posts").WithKey()
	if loc.Key == other.Key {
		t.Error("keys should be unique per entry")
	}
}
