// Package output renders classified row sets to their persisted artifacts:
// flat delimited files and styled workbooks.
package output

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// WriteFlat writes a sheet as a comma-delimited file. A sheet with no
// Header is written headerless (the locked projection). Failures are
// reported as OutputWriteError; artifacts already written by the run are
// unaffected.
func WriteFlat(path string, sheet recon.Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return &entities.OutputWriteError{Artifact: filepath.Base(path), Err: err}
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if sheet.Header != nil {
		if err := w.Write(sheet.Header); err != nil {
			return &entities.OutputWriteError{Artifact: filepath.Base(path), Err: err}
		}
	}
	for _, row := range sheet.Rows {
		if err := w.Write(row); err != nil {
			return &entities.OutputWriteError{Artifact: filepath.Base(path), Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &entities.OutputWriteError{Artifact: filepath.Base(path), Err: err}
	}
	if err := file.Close(); err != nil {
		return &entities.OutputWriteError{Artifact: filepath.Base(path), Err: err}
	}
	return nil
}
