package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/pixelgram/internal/api"
	"github.com/isdelr/pixelgram/internal/monitoring"
	"github.com/isdelr/pixelgram/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the local web client",
		Args:    cobra.NoArgs,
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	unsubscribe := a.store.Subscribe(hub.Publish)
	defer unsubscribe()

	// Set up and run the activity pruner
	scheduler, err := monitoring.NewScheduler(a.activity, a.cfg.ActivityPruneSchedule, a.cfg.ActivityRetention)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(hub, a.store, a.dispatcher, a.sessions, a.activity, a.cfg.AllowedOrigins)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.ServerPort),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", a.cfg.ServerPort).Str("backend", a.cfg.BaseURL).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}
