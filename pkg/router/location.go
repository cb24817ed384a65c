package router

import (
	"crypto/rand"
	"encoding/hex"
	"net/url"
	"strings"
)

// Location is a parsed URL in the shape the client router understands.
type Location struct {
	// Pathname is the path component, never empty (defaults to "/").
	Pathname string `json:"pathname"`

	// Search is the query string including the leading "?", or "".
	Search string `json:"search"`

	// Hash is the fragment including the leading "#", or "".
	Hash string `json:"hash"`

	// State is opaque navigation state supplied by the client.
	State any `json:"state,omitempty"`

	// Key identifies this entry in the client's history stack.
	Key string `json:"key,omitempty"`
}

// ParseLocation parses a raw URL string into a Location. The pathname
// defaults to "/" so a Location is always reconstructible via String.
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Pathname: "/"}
	}
	loc := Location{Pathname: u.Path}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.Fragment
	}
	return loc
}

// String reassembles the location into a URL string.
func (l Location) String() string {
	var b strings.Builder
	if l.Pathname == "" {
		b.WriteString("/")
	} else {
		b.WriteString(l.Pathname)
	}
	b.WriteString(l.Search)
	b.WriteString(l.Hash)
	return b.String()
}

// WithKey returns a copy of the location carrying a fresh history key.
func (l Location) WithKey() Location {
	l.Key = newLocationKey()
	return l
}

func newLocationKey() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "default"
	}
	return hex.EncodeToString(buf[:])
}
