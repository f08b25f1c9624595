package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/flatfile"
	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/sqldb"
)

func newRunCommand(cfgFile *string, verbose *bool) *cobra.Command {
	var (
		dateStr string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the day's extracts from the drop directory",
		Long: `run picks up the three extracts from the configured drop directory,
classifies them, and writes every output into a dated folder under the
output directory. The folder is named for the business day (the day before
the run date), matching the nightly schedule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnvironment(*cfgFile, *verbose)
			if err != nil {
				return err
			}

			runDate := time.Now()
			if dateStr != "" {
				runDate, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateStr, err)
				}
			}
			businessDay := runDate.AddDate(0, 0, -1)
			outDir := filepath.Join(cfg.OutputDir, businessDay.Format("01022006"))

			pipeline := &Pipeline{
				Loader:      flatfile.NewLoader(),
				Log:         log,
				OrderIDBase: cfg.OrderIDBase,
				DryRun:      dryRun,
			}

			if cfg.Database.Enabled {
				db, err := openDatabase(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				lookups := sqldb.NewLookupRepository(db)
				pipeline.Crossref = lookups
				pipeline.OnHand = lookups
				pipeline.Store = sqldb.NewDailyStore(db, log)
			}

			log.Info("daily run starting",
				"run_date", runDate.Format("2006-01-02"),
				"output_dir", outDir,
				"dry_run", dryRun)

			err = pipeline.Execute(cmd.Context(),
				filepath.Join(cfg.DropDir, cfg.MovementFile),
				filepath.Join(cfg.DropDir, cfg.LockedFile),
				filepath.Join(cfg.DropDir, cfg.TransactionFile),
				outDir, runDate)
			if err != nil {
				log.Error("daily run failed", "error", err)
				return err
			}

			log.Info("daily run complete", "output_dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "run date as YYYY-MM-DD (default today); fixes the transfer PO token and output folder")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and report counts without writing outputs or persisting")

	return cmd
}
