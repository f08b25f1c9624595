package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/flatfile"
	"github.com/marlowpress/dailyfiles/pkg/infrastructure/repositories/sqldb"
	"github.com/marlowpress/dailyfiles/pkg/interfaces/output"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// Output artifact names, fixed by the downstream import tooling.
const (
	TransferCSVName     = "Transfer.csv"
	TransferUploadName  = "TRANSFER_SAGE_UPLOAD.xlsx"
	ReviewUploadName    = "RV_SAGE_UPLOAD.xlsx"
	CreditUploadName    = "CR_SAGE_UPLOAD.xlsx"
	SalesUploadName     = "SL_SAGE_UPLOAD.xlsx"
	ReplenishmentName   = "ING_Transfers.csv"
	LockedExportName    = "LOCKEDT.TXT"
	InProcessExportName = "INPRO.TXT"
)

// Pipeline runs one reconciliation pass: parse the three extracts,
// classify, and route every output into outDir. The external lookups and
// the store are optional; a nil OnHand skips the replenishment file and a
// nil Store skips persistence.
type Pipeline struct {
	Loader      *flatfile.Loader
	Crossref    recon.CrossrefRepository
	OnHand      recon.OnHandRepository
	Store       *sqldb.DailyStore
	Log         *slog.Logger
	OrderIDBase int64
	DryRun      bool
}

// Execute processes one run to completion. runDate drives the transfer PO
// token only; all other derivations come from row data, so a rerun with
// the same date and inputs is byte-identical.
func (p *Pipeline) Execute(ctx context.Context, movementPath, lockedPath, transactionPath, outDir string, runDate time.Time) error {
	if !p.DryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := p.processMovements(ctx, movementPath, outDir, runDate); err != nil {
		return err
	}
	if err := p.processOrders(ctx, transactionPath, outDir); err != nil {
		return err
	}
	return p.processLocked(ctx, lockedPath, outDir)
}

func (p *Pipeline) processMovements(ctx context.Context, path, outDir string, runDate time.Time) error {
	recs, err := p.Loader.LoadMovements(path)
	if err != nil {
		return err
	}
	p.Log.Info("movement extract loaded", "file", filepath.Base(path), "rows", len(recs))

	classified := recon.ClassifyMovements(recs, runDate)
	transfer := recon.TransferRows(classified)
	p.Log.Info("movements classified", "surviving", len(classified), "transfer_rows", len(transfer))

	if p.DryRun {
		return nil
	}
	if err := output.WriteFlat(filepath.Join(outDir, TransferCSVName), recon.TransferFlat(transfer)); err != nil {
		return err
	}
	return output.WriteWorkbook(filepath.Join(outDir, TransferUploadName), []recon.Sheet{recon.TransferSheet(transfer)})
}

func (p *Pipeline) processOrders(ctx context.Context, path, outDir string) error {
	lines, err := p.Loader.LoadTransactions(path)
	if err != nil {
		return err
	}
	p.Log.Info("transaction file loaded", "file", filepath.Base(path), "rows", len(lines))

	recon.SequenceOrders(lines, recon.NewOrderIDAllocator(p.OrderIDBase))

	// The store receives the sequenced, unclassified set and classifies
	// it server-side with the SQL renderings of the same rule table the
	// in-memory path runs next.
	if p.Store != nil && !p.DryRun {
		if err := p.Store.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := p.Store.LoadSequenced(ctx, lines); err != nil {
			return err
		}
		if err := p.Store.ApplyRules(ctx, recon.OrderRules(nil)); err != nil {
			return err
		}
		p.Log.Info("classified order set persisted", "rows", len(lines))
	}

	classifier := recon.NewOrderClassifier(p.Crossref, p.Log)
	classified := classifier.Classify(ctx, lines)

	review, credit, sales := recon.SplitPartitions(classified)
	p.Log.Info("order partitions carved",
		"review", len(review), "credit", len(credit), "sales", len(sales))

	if p.DryRun {
		return nil
	}

	if err := output.WriteWorkbook(filepath.Join(outDir, ReviewUploadName), recon.ReviewUpload(review)); err != nil {
		return err
	}
	if err := output.WriteWorkbook(filepath.Join(outDir, CreditUploadName), recon.CreditUpload(credit)); err != nil {
		return err
	}
	if err := output.WriteWorkbook(filepath.Join(outDir, SalesUploadName), recon.SalesUpload(sales)); err != nil {
		return err
	}

	return p.writeReplenishment(ctx, sales, outDir)
}

// writeReplenishment emits the deficit list. An unavailable on-hand table
// degrades this output only: the run continues without it.
func (p *Pipeline) writeReplenishment(ctx context.Context, sales []*entities.OrderLine, outDir string) error {
	if p.OnHand == nil {
		p.Log.Info("no on-hand source configured, replenishment list skipped")
		return nil
	}

	deficits, err := recon.ReplenishmentDeficits(ctx, sales, p.OnHand)
	if err != nil {
		var unavailable *entities.LookupUnavailableError
		if errors.As(err, &unavailable) {
			p.Log.Warn("on-hand lookup unavailable, replenishment list skipped", "error", err)
			return nil
		}
		return err
	}

	p.Log.Info("replenishment deficits derived", "rows", len(deficits))
	return output.WriteFlat(filepath.Join(outDir, ReplenishmentName), recon.DeficitSheet(deficits))
}

func (p *Pipeline) processLocked(ctx context.Context, path, outDir string) error {
	recs, err := p.Loader.LoadLocked(path)
	if err != nil {
		return err
	}
	locked, inProcess := recon.SplitLocked(recs)
	p.Log.Info("locked extract split",
		"file", filepath.Base(path), "rows", len(recs),
		"locked", len(locked), "in_process", len(inProcess))

	if p.DryRun {
		return nil
	}
	if err := output.WriteFlat(filepath.Join(outDir, LockedExportName), recon.LockedProjection(locked)); err != nil {
		return err
	}
	return output.WriteFlat(filepath.Join(outDir, InProcessExportName), recon.InProcessProjection(inProcess))
}
