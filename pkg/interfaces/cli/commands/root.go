// Package commands wires the CLI: the daily run, manual reruns, and
// regenerating ledger uploads from the persisted order table.
package commands

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/marlowpress/dailyfiles/pkg/config"
	"github.com/marlowpress/dailyfiles/pkg/logger"
)

// NewRootCommand builds the dailyfiles CLI.
func NewRootCommand() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "dailyfiles",
		Short: "Classify the daily distributor extracts into ledger uploads and warehouse requests",
		Long: `dailyfiles turns the distributor's three daily extracts (inventory
movements, locked/in-process SKUs, and the transaction file) into typed
business outputs: transfer requests, sales/credit/review ledger uploads,
a replenishment deficit list, and the locked and in-process projections.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the run configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRunCommand(&cfgFile, &verbose),
		newRerunCommand(&cfgFile, &verbose),
		newUploadsCommand(&cfgFile, &verbose),
	)
	return root
}

// loadEnvironment reads the config and builds the logger shared by every
// subcommand.
func loadEnvironment(cfgFile string, verbose bool) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(level)
	return cfg, log, nil
}

// openDatabase connects to the configured database, verifying the
// connection up front so a dead server fails the command immediately
// rather than mid-run.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxLifetime(time.Hour)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}
