package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blackroad/journeymap/internal/config"
	"github.com/blackroad/journeymap/internal/database"
	"github.com/blackroad/journeymap/internal/journey"
	"github.com/blackroad/journeymap/internal/store"
)

// app carries the resources shared by all subcommands. The database is
// opened in the root's persistent pre-run, so bare `journeymap` (help) never
// touches storage.
type app struct {
	cfg    config.Config
	dbPath string
	db     *sql.DB
	mapper *journey.Mapper
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	db, err := database.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := database.Migrate(cmd.Context(), db); err != nil {
		_ = db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	a.db = db
	a.mapper = journey.New(store.New(db), slog.Default())
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "journeymap",
		Short:             "Map and analyze multi-channel customer journeys",
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd, args)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", a.cfg.DBPath, "SQLite database path")

	root.AddCommand(
		newFunnelCmd(a),
		newSessionCmd(a),
		newEndCmd(a),
		newTouchpointCmd(a),
		newAnalyzeCmd(a),
		newPathsCmd(a),
		newDropoffsCmd(a),
		newChannelsCmd(a),
		newLTVCmd(a),
		newHeatmapCmd(a),
	)
	return root
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	a := &app{cfg: cfg}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
