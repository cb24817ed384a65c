package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/remix-go/remix/internal/config"
	"github.com/remix-go/remix/internal/dev"
	"github.com/remix-go/remix/pkg/middleware"
)

func devCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development build server",
		Long: `Start the development build server.

The server builds manifests on demand for the routes the app is
currently serving and broadcasts reload events to connected browsers
over a websocket. Prometheus metrics are exposed on /metrics.

Examples:
  remix dev
  remix dev --port=8002`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from remix.config.json)")

	return cmd
}

func runDev(port int) error {
	e := readEnv()
	cfg, err := config.NewLoader(nil, nil).Read(e.Root)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.DevServerPort = port
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := dev.NewServer(cfg.AppDirectory, logger)

	// Watch application sources and push reloads to connected browsers.
	watcher := dev.NewWatcher(cfg.AppDirectory)
	watcher.OnChange(func(c dev.Change) {
		logger.Debug("source changed", "path", c.Path)
		switch c.Type {
		case dev.ChangeStyle:
			server.Reload().NotifyCSS(c.Path)
		default:
			server.Reload().NotifyReload()
		}
	})
	go watcher.Start(context.Background())
	defer watcher.Stop()

	mux := chi.NewRouter()
	mux.Use(middleware.Metrics())
	mux.Handle("/metrics", promhttp.Handler())
	mux.Mount("/", server)

	logger.Info("dev build server listening",
		"port", cfg.DevServerPort,
		"app", cfg.AppDirectory,
		"mode", e.RunMode,
	)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.DevServerPort), mux)
}
