package dev

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/remix-go/remix/internal/build"
)

// ReloadPath is the WebSocket endpoint browsers connect to.
const ReloadPath = "/__reload"

// Server is the dev build server. It exposes the manifest endpoint the
// live artifact reader fetches from, plus the reload WebSocket.
type Server struct {
	builder *Builder
	reload  *ReloadServer
	logger  *slog.Logger
	mux     chi.Router
}

// NewServer creates a dev build server over the given app directory.
func NewServer(appDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		builder: NewBuilder(appDir),
		reload:  NewReloadServer(),
		logger:  logger,
	}

	mux := chi.NewRouter()
	mux.Get(build.ManifestPath, s.handleManifest)
	mux.Get(ReloadPath, s.reload.HandleWebSocket)
	s.mux = mux
	return s
}

// Reload exposes the reload broadcaster, e.g. for a file watcher.
func (s *Server) Reload() *ReloadServer { return s.reload }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the server on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("dev build server listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

// handleManifest builds and returns a manifest for the requested
// routes. Rebuilding only the matched routes keeps dev requests fast.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	routeIDs := SplitRouteIDs(r.URL.Query().Get("routes"))

	manifest, err := s.builder.Build(routeIDs)
	if err != nil {
		s.logger.Error("dev build failed", "routes", routeIDs, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("dev build complete", "routes", routeIDs, "assets", len(manifest))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(manifest); err != nil {
		s.logger.Error("write manifest", "error", err)
	}
}
