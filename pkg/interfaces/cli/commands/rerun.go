package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/flatfile"
	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/sqldb"
)

func newRerunCommand(cfgFile *string, verbose *bool) *cobra.Command {
	var (
		movementPath    string
		lockedPath      string
		transactionPath string
		outDir          string
		dateStr         string
	)

	cmd := &cobra.Command{
		Use:   "rerun",
		Short: "Reprocess explicit extract files into a chosen output directory",
		Long: `rerun processes the three extracts named on the command line instead of
the configured drop directory. Use it to regenerate a past day's outputs
from archived inputs. Pass --date as the original run date so the
transfer purchase order token matches the first run.`,
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

			pipeline := &Pipeline{
				Loader:      flatfile.NewLoader(),
				Log:         log,
				OrderIDBase: cfg.OrderIDBase,
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

			log.Info("rerun starting",
				"run_date", runDate.Format("2006-01-02"),
				"output_dir", outDir)

			err = pipeline.Execute(cmd.Context(), movementPath, lockedPath, transactionPath, outDir, runDate)
			if err != nil {
				log.Error("rerun failed", "error", err)
				return err
			}

			log.Info("rerun complete", "output_dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&movementPath, "cdt", "", "path to the inventory movement extract")
	cmd.Flags().StringVar(&lockedPath, "cdp", "", "path to the locked/in-process extract")
	cmd.Flags().StringVar(&transactionPath, "trans", "", "path to the transaction file")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write outputs into")
	cmd.Flags().StringVar(&dateStr, "date", "", "original run date as YYYY-MM-DD (default today)")
	cmd.MarkFlagRequired("cdt")
	cmd.MarkFlagRequired("cdp")
	cmd.MarkFlagRequired("trans")
	cmd.MarkFlagRequired("out")

	return cmd
}
