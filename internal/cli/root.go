// Package cli implements the pixelgram command line.
package cli

import (
	"database/sql"
	"net/http"

	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/auth"
	"github.com/isdelr/pixelgram/internal/config"
	"github.com/isdelr/pixelgram/internal/database"
	"github.com/isdelr/pixelgram/internal/logger"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/isdelr/pixelgram/internal/services"
	"github.com/spf13/cobra"
)

// app holds everything a subcommand needs. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	cfg        *config.Config
	db         *sql.DB
	store      *outcome.Store
	sessions   *services.SessionService
	activity   *services.ActivityService
	dispatcher *actions.Dispatcher
}

// Execute runs the root command.
func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	var dbPath string

	root := &cobra.Command{
		Use:          "pixelgram",
		Short:        "Client for the pixelgram photo sharing service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DatabasePath = dbPath
			}
			logger.Init(cfg.LogLevel)
			return a.open(cfg)
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "local database path (overrides DATABASE_PATH)")

	root.AddCommand(
		serveCmd(a),
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		likeCmd(a),
		commentCmd(a),
		postCmd(a),
		activityCmd(a),
	)
	return root, a
}

func (a *app) open(cfg *config.Config) error {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return err
	}

	a.cfg = cfg
	a.db = db
	a.store = outcome.NewStore()
	a.sessions = services.NewSessionService(db)
	a.activity = services.NewActivityService(db)
	a.store.Subscribe(a.activity.Observe)

	a.dispatcher = actions.New(
		cfg.BaseURL,
		auth.NewSessionProvider(a.sessions),
		a.store,
		actions.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		actions.WithSessions(a.sessions),
	)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// remote is a PreRunE for commands that talk to the backend.
func (a *app) remote(cmd *cobra.Command, args []string) error {
	return a.cfg.RequireBaseURL()
}
