package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/sqldb"
	"github.com/marlowpress/dailyfiles/pkg/interfaces/output"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

func newUploadsCommand(cfgFile *string, verbose *bool) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "Regenerate the sales and credit ledger uploads from the persisted order table",
		Long: `uploads re-renders SL_SAGE_UPLOAD.xlsx and CR_SAGE_UPLOAD.xlsx from the
classified rows sitting in the database, without touching the input
extracts. Use it when a workbook was lost or mangled after a run whose
order table is still loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnvironment(*cfgFile, *verbose)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("uploads requires database.enabled in the configuration")
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store := sqldb.NewDailyStore(db, log)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			ctx := cmd.Context()

			writePartition := func(p recon.Partition, render func([]*entities.OrderLine) []recon.Sheet, name string) error {
				lines, err := store.SelectPartition(ctx, p)
				if err != nil {
					return err
				}
				sheets := render(lines)

				// The replica's header predicate must agree with the
				// header rows derived from the detail set.
				headers, err := store.CountHeaders(ctx, p)
				if err != nil {
					return err
				}
				if headers != len(sheets[0].Rows) {
					log.Warn("header count mismatch between replica and projection",
						"partition", p.Name, "replica", headers, "projection", len(sheets[0].Rows))
				}

				log.Info("partition selected", "partition", p.Name,
					"rows", len(lines), "headers", headers)
				return output.WriteWorkbook(filepath.Join(outDir, name), sheets)
			}

			if err := writePartition(recon.SalesPartition, recon.SalesUpload, SalesUploadName); err != nil {
				return err
			}
			if err := writePartition(recon.CreditPartition, recon.CreditUpload, CreditUploadName); err != nil {
				return err
			}

			log.Info("uploads regenerated", "output_dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the workbooks into")
	cmd.MarkFlagRequired("out")

	return cmd
}
