package output

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// textNumFmt is the built-in "@" number format: every cell holds literal
// text so leading zeros in account numbers and ISBNs survive the round
// trip through the import tool.
const textNumFmt = 49

// WriteWorkbook writes sheets to an xlsx workbook. Contract per sheet:
// all columns text-formatted, header cells unstyled, and one defined name
// matching the sheet name spanning the full written extent.
func WriteWorkbook(path string, sheets []recon.Sheet) error {
	artifact := filepath.Base(path)

	f := excelize.NewFile()
	defer f.Close()

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: textNumFmt})
	if err != nil {
		return &entities.OutputWriteError{Artifact: artifact, Err: err}
	}

	for i, sheet := range sheets {
		if err := writeSheet(f, sheet, i == 0, textStyle); err != nil {
			return &entities.OutputWriteError{Artifact: artifact, Err: err}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &entities.OutputWriteError{Artifact: artifact, Err: err}
	}
	return nil
}

func writeSheet(f *excelize.File, sheet recon.Sheet, first bool, textStyle int) error {
	if first {
		// Reuse the default sheet rather than leaving an empty Sheet1.
		if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
			return err
		}
	} else {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}
	}

	row := func(n int, values []string) error {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheet.Name, fmt.Sprintf("A%d", n), &cells)
	}

	if err := row(1, sheet.Header); err != nil {
		return err
	}
	for i, r := range sheet.Rows {
		if err := row(i+2, r); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Header))
	if err != nil {
		return err
	}
	if err := f.SetColStyle(sheet.Name, "A:"+lastCol, textStyle); err != nil {
		return err
	}

	lastRow := len(sheet.Rows) + 1
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     sheet.Name,
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", sheet.Name, lastCol, lastRow),
	})
}
