// Package cli implements the evento command-line client.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/evento/internal/auth"
	"github.com/me/evento/internal/bus"
	"github.com/me/evento/internal/config"
	"github.com/me/evento/internal/logging"
	"github.com/me/evento/internal/session"
	"github.com/me/evento/internal/store"
)

var (
	flagServer    string
	flagConfig    string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
)

// App holds the wired client components for the duration of a command.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    store.Store
	Sessions *session.Manager
	Bus      *bus.Bus
	Gateway  *auth.Gateway
}

var app *App

// setup loads configuration, opens the credential store, and wires the
// session manager and auth gateway.
func setup() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	sessions := session.NewManager(st, logger)
	b := bus.New()

	app = &App{
		Config:   cfg,
		Logger:   logger,
		Store:    st,
		Sessions: sessions,
		Bus:      b,
		Gateway:  auth.NewGateway(cfg.APIConfig(), sessions, b, logger),
	}
	return nil
}

func teardown() {
	if app != nil && app.Store != nil {
		app.Store.Close()
	}
}

// NewRootCmd creates the root cobra command for the evento CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "evento",
		Short: "evento is a client for the event management platform",
		Long:  "evento browses, creates, joins, and moderates events on the event management platform.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardown()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "Backend URL (or EVENTO_SERVER env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.evento/config.yaml)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "Credential store path (default ~/.evento/evento.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newEventsCmd(),
		newAdminCmd(),
	)

	return root
}
