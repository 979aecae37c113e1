package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bastiangx/mnemo/pkg/api"
	"github.com/bastiangx/mnemo/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve associations over HTTP.

Routes:
  GET /associations/{word}?limit=10&split=true
  GET /definitions/{word}
  GET /closest/{word}
  GET /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, addr string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	handler := api.NewHandler(a.engine, a.lookup, a.cfg.Server)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	watchConfig(ctx, a.configPath, func(cfg *config.Config) {
		handler.SetServerConfig(cfg.Server)
	})

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchConfig applies server section changes until ctx is done.
func watchConfig(ctx context.Context, path string, apply func(*config.Config)) {
	if path == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, path, func(cfg *config.Config) {
			apply(cfg)
			log.Info("Config reloaded, lookup and search changes apply on restart", "path", path)
		})
		if err != nil {
			log.Warnf("Config watcher stopped: %v", err)
		}
	}()
}
