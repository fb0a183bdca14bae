// Package cli wires the application together: configuration, logger,
// storage, the interactive menu, and one subcommand per store operation
// for scripted use.
//
// STARTUP SEQUENCE (PersistentPreRunE, shared by every command):
//  1. Load configuration (optional YAML file, env overrides, defaults)
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//
// Invoked bare, the binary drops into the interactive menu:
//
//	students-db
//
// Or operations can be run directly:
//
//	students-db add "Ann Perkins" A ann@x.com
//	students-db list --json
package cli

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/greghah/students-db/internal/config"
	"github.com/greghah/students-db/internal/menu"
	"github.com/greghah/students-db/internal/storage"
	"github.com/greghah/students-db/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

// app carries the dependencies every command needs. The command
// constructors below close over it — the same dependency-injection
// pattern as handler factories in an HTTP service, just for cobra.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    storage.Storage
	validate *validator.Validate
}

// Execute builds the command tree and runs it. It is the only function
// main needs to call.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error; a non-zero exit code
		// signals failure to the shell / CI system.
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{validate: validator.New()}
	var configPath string

	root := &cobra.Command{
		Use:   "students-db",
		Short: "Manage student records in a local SQLite database",
		Long: `students-db keeps student records (name, grade, email) in a single
SQLite file. Run it without arguments for an interactive menu, or use
the subcommands for scripted access.`,
		// The error is already descriptive; re-printing usage on every
		// storage failure just buries it.
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.store != nil {
				a.store.Close()
			}
		},

		// Bare invocation → the interactive menu.
		RunE: func(cmd *cobra.Command, args []string) error {
			return menu.New(a.store, cmd.InOrStdin(), cmd.OutOrStdout(), a.log).Run()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the configuration YAML file")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)

	return root
}

// init performs the startup sequence. An error here is fatal to the
// whole invocation — if the backing file cannot be opened there is
// nothing any command can do.
func (a *app) init(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = setupLogger(cfg.Env)
	a.log.Debug("starting students-db",
		slog.String("env", cfg.Env),
		slog.String("storage_path", cfg.StoragePath),
	)

	store, err := sqlite.New(cfg)
	if err != nil {
		a.log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		return err
	}
	a.store = store

	a.log.Debug("storage initialised", slog.String("path", cfg.StoragePath))
	return nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
// Logs go to stderr so they never interleave with record output on
// stdout — `students-db list --json | jq` must see only JSON.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
