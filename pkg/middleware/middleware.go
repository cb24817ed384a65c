package middleware

import (
	"net/http"
	"strings"
)

// Request modes, derived from the reserved endpoint prefixes.
const (
	ModeDocument = "document"
	ModeData     = "data"
	ModeManifest = "manifest"
)

// requestMode classifies a request the same way the dispatcher does.
func requestMode(path string) string {
	switch {
	case strings.HasPrefix(path, "/__remix_data"):
		return ModeData
	case strings.HasPrefix(path, "/__remix_manifest"):
		return ModeManifest
	default:
		return ModeDocument
	}
}

// statusRecorder captures the response status for after-the-fact
// labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: 0}
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
