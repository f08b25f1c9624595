package flatfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadMovements(t *testing.T) {
	path := writeFile(t, "IPS_INV.CDT",
		"TRK1,030524,631760,0000000001,,9780000000001,AC,-4,E,D,1,TC,\n"+
			"TRK2,030524,6318681,0000000002,,9780000000002,AC,2,E,D,2,SS,\n")

	recs, err := NewLoader().LoadMovements(path)
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}

	r := recs[0]
	if r.Warehouse != "631760" {
		t.Errorf("Expected warehouse 631760, got %s", r.Warehouse)
	}
	if r.EAN != 9780000000001 {
		t.Errorf("Expected EAN 9780000000001, got %d", r.EAN)
	}
	if r.Qty != -4 {
		t.Errorf("Expected quantity -4, got %d", r.Qty)
	}
	if r.ActionType != "TC" {
		t.Errorf("Expected action type TC, got %s", r.ActionType)
	}
}

func TestLoadMovements_MalformedQuantity(t *testing.T) {
	path := writeFile(t, "IPS_INV.CDT",
		"TRK1,030524,631760,0000000001,,9780000000001,AC,four,E,D,1,TC,\n")

	_, err := NewLoader().LoadMovements(path)
	var malformed *entities.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedRecordError, got %v", err)
	}
	if malformed.Row != 1 {
		t.Errorf("Expected row 1, got %d", malformed.Row)
	}
	if malformed.Column != "Qty" {
		t.Errorf("Expected column Qty, got %s", malformed.Column)
	}
}

func TestLoadMovements_SchemaMismatch(t *testing.T) {
	path := writeFile(t, "IPS_INV.CDT",
		"TRK1,030524,631760,0000000001,,9780000000001,AC,-4,E,D,1,TC,\n"+
			"short,row\n")

	_, err := NewLoader().LoadMovements(path)
	var mismatch *entities.SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected SchemaMismatchError, got %v", err)
	}
	if mismatch.Row != 2 {
		t.Errorf("Expected row 2, got %d", mismatch.Row)
	}
	if mismatch.Want != 13 || mismatch.Got != 2 {
		t.Errorf("Expected want=13 got=2, got want=%d got=%d", mismatch.Want, mismatch.Got)
	}
}

func TestLoadLocked(t *testing.T) {
	path := writeFile(t, "LOCKED.CDP",
		"T,030524,631760X,0000000001,,9780000000001,QH,12,,,,,\n"+
			"T,030524,631760X,0000000002,,9780000000002,OP,3,,,,,\n")

	recs, err := NewLoader().LoadLocked(path)
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}
	if recs[0].InvoiceCode != "QH" || recs[0].Qty != 12 {
		t.Errorf("Expected QH/12, got %s/%d", recs[0].InvoiceCode, recs[0].Qty)
	}
	if !recs[0].IsLocked() {
		t.Error("Expected first record to be locked")
	}
	if !recs[1].IsInProcess() {
		t.Error("Expected second record to be in-process")
	}
}

func TestLoadTransactions(t *testing.T) {
	row := "1001\tO\t\tPO1\t000123456\tAcme Books\tUS\t000555555\tAcme Store\t" +
		"9780000000001\tSome Title\tCL1\t5\t50.00\t10.00\t0.00\tUSD\t0\tLK1\t\tNY\t2024-03-05"
	path := writeFile(t, "IPS_DAILY_NO_LINE_NUM.TXT", row+"\n")

	lines, err := NewLoader().LoadTransactions(path)
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	l := lines[0]
	if l.OrderNum != "1001" {
		t.Errorf("Expected order number 1001, got %s", l.OrderNum)
	}
	if l.Qty != 5 {
		t.Errorf("Expected quantity 5, got %d", l.Qty)
	}
	if l.Ext.String() != "50" {
		t.Errorf("Expected extension 50, got %s", l.Ext)
	}
	if l.Price.String() != "10" {
		t.Errorf("Expected price 10, got %s", l.Price)
	}
	if l.OrderDate != "2024-03-05" {
		t.Errorf("Expected order date 2024-03-05, got %s", l.OrderDate)
	}
}

func TestLoadTransactions_MalformedDecimal(t *testing.T) {
	row := "1001\tO\t\tPO1\t000123456\tAcme Books\tUS\t000555555\tAcme Store\t" +
		"9780000000001\tSome Title\tCL1\t5\tfifty\t10.00\t0.00\tUSD\t0\tLK1\t\tNY\t2024-03-05"
	path := writeFile(t, "IPS_DAILY_NO_LINE_NUM.TXT", row+"\n")

	_, err := NewLoader().LoadTransactions(path)
	var malformed *entities.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedRecordError, got %v", err)
	}
	if malformed.Column != "Ext" {
		t.Errorf("Expected column Ext, got %s", malformed.Column)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadMovements(filepath.Join(t.TempDir(), "absent.CDT"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
