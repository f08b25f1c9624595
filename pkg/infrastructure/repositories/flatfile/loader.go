// Package flatfile parses the three raw daily extracts into typed rows.
// The files carry no header row; every file has a fixed column schema and
// parsing is strict per declared column type.
package flatfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// Column counts fixed by the extract formats.
const (
	movementColumns    = 13
	lockedColumns      = 13
	transactionColumns = 22
)

// Loader reads the raw daily extracts.
type Loader struct{}

// NewLoader creates a flat-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMovements reads the comma-delimited inventory-movement extract.
func (l *Loader) LoadMovements(path string) ([]*entities.MovementRecord, error) {
	rows, err := readRows(path, ',', movementColumns)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	recs := make([]*entities.MovementRecord, 0, len(rows))
	for i, row := range rows {
		ean, err := parseInt(name, i+1, "EAN", row[5])
		if err != nil {
			return nil, err
		}
		qty, err := parseInt(name, i+1, "Qty", row[7])
		if err != nil {
			return nil, err
		}
		recs = append(recs, &entities.MovementRecord{
			TrackingNum:     row[0],
			FileDate:        row[1],
			Warehouse:       row[2],
			ISBN10:          row[3],
			UPC:             row[4],
			EAN:             ean,
			ActivityCode:    row[6],
			Qty:             qty,
			EachFlag:        row[8],
			DispositionCode: row[9],
			LineNum:         row[10],
			ActionType:      row[11],
			FromLocation:    row[12],
		})
	}
	return recs, nil
}

// LoadLocked reads the comma-delimited locked/in-process extract.
func (l *Loader) LoadLocked(path string) ([]*entities.LockedRecord, error) {
	rows, err := readRows(path, ',', lockedColumns)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	recs := make([]*entities.LockedRecord, 0, len(rows))
	for i, row := range rows {
		qty, err := parseInt(name, i+1, "QTY", row[7])
		if err != nil {
			return nil, err
		}
		recs = append(recs, &entities.LockedRecord{
			Tag:         row[0],
			FileDate:    row[1],
			AccountSAN:  row[2],
			ISBN10:      row[3],
			Filler5:     row[4],
			ISBN13:      row[5],
			InvoiceCode: row[6],
			Qty:         qty,
			Filler9:     row[8],
			Filler10:    row[9],
			Filler11:    row[10],
			Filler12:    row[11],
			Filler13:    row[12],
		})
	}
	return recs, nil
}

// LoadTransactions reads the tab-delimited daily transaction file.
func (l *Loader) LoadTransactions(path string) ([]*entities.OrderLine, error) {
	rows, err := readRows(path, '\t', transactionColumns)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	lines := make([]*entities.OrderLine, 0, len(rows))
	for i, row := range rows {
		qty, err := parseInt(name, i+1, "Qty", row[12])
		if err != nil {
			return nil, err
		}
		ext, err := parseDecimal(name, i+1, "Ext", row[13])
		if err != nil {
			return nil, err
		}
		price, err := parseDecimal(name, i+1, "Price", row[14])
		if err != nil {
			return nil, err
		}
		discount, err := parseDecimal(name, i+1, "Discount", row[15])
		if err != nil {
			return nil, err
		}
		lines = append(lines, &entities.OrderLine{
			OrderNum:      row[0],
			OrderType:     row[1],
			OrderTypeSRA:  row[2],
			PONumber:      row[3],
			BillTo:        row[4],
			BillToName:    row[5],
			BillToCountry: row[6],
			ShipTo:        row[7],
			ShipToName:    row[8],
			ISBN:          row[9],
			Title:         row[10],
			Client:        row[11],
			Qty:           qty,
			Ext:           ext,
			Price:         price,
			Discount:      discount,
			CurrencyType:  row[16],
			ReturnType:    row[17],
			LineKey:       row[18],
			SourceWhs:     row[19],
			StateName:     row[20],
			OrderDate:     row[21],
		})
	}
	return lines, nil
}

// readRows reads every row of a headerless delimited file, enforcing the
// fixed column count. Rows are returned untrimmed except for the delimiter
// handling encoding/csv already does.
func readRows(path string, delimiter rune, columns int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	// Column counts are checked per row below so the error can carry the
	// row index.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	for i, row := range rows {
		if len(row) != columns {
			return nil, &entities.SchemaMismatchError{File: name, Row: i + 1, Want: columns, Got: len(row)}
		}
	}
	return rows, nil
}

func parseInt(file string, row int, column, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &entities.MalformedRecordError{File: file, Row: row, Column: column, Err: err}
	}
	return n, nil
}

func parseDecimal(file string, row int, column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, &entities.MalformedRecordError{File: file, Row: row, Column: column, Err: err}
	}
	return d, nil
}
