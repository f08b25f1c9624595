package recon

import (
	"testing"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

func TestSplitPartitions(t *testing.T) {
	reviewSale := saleLine()
	reviewSale.Discount = dec("100")
	reviewReturn := saleLine()
	reviewReturn.OrderType = entities.OtypeReturn
	reviewReturn.Discount = dec("100")
	creditLine := saleLine()
	creditLine.OrderType = entities.OtypeReturn
	salesLine := saleLine()

	review, credit, sales := SplitPartitions([]*entities.OrderLine{
		reviewSale, reviewReturn, creditLine, salesLine,
	})

	if len(review) != 2 {
		t.Errorf("Expected 2 review lines, got %d", len(review))
	}
	if len(credit) != 1 {
		t.Errorf("Expected 1 credit line, got %d", len(credit))
	}
	if len(sales) != 1 {
		t.Errorf("Expected 1 sales line, got %d", len(sales))
	}
	if total := len(review) + len(credit) + len(sales); total != 4 {
		t.Errorf("Expected partitions to cover all 4 lines, got %d", total)
	}
}

func TestSplitPartitions_ReviewTakesPrecedenceOverCredit(t *testing.T) {
	// A discounted return lands in review, never in credit; the partition
	// SQL predicates encode the same precedence.
	l := saleLine()
	l.OrderType = entities.OtypeReturn
	l.Discount = dec("100")

	review, credit, _ := SplitPartitions([]*entities.OrderLine{l})
	if len(review) != 1 || len(credit) != 0 {
		t.Errorf("Expected discounted return in review, got review=%d credit=%d",
			len(review), len(credit))
	}
}

func TestPartitions_HeaderWhereNarrowsDetailWhere(t *testing.T) {
	// Header rows are the first lines of the detail set, on both call
	// sites: the header predicate must be exactly the detail predicate
	// restricted to Line_num = 1.
	for _, p := range []Partition{ReviewPartition, CreditPartition, SalesPartition} {
		expected := p.DetailWhere + " AND Line_num = 1"
		if p.HeaderWhere != expected {
			t.Errorf("Partition %s: expected header predicate %q, got %q",
				p.Name, expected, p.HeaderWhere)
		}
	}
}

func classifiedLine(orderNum string, lineNum int, orderID int64) *entities.OrderLine {
	l := saleLine()
	l.OrderNum = orderNum
	l.LineNum = lineNum
	l.OrderID = orderID
	l.Whs = "ING"
	l.RepInv = orderNum
	l.RepQty = l.Qty
	l.ReviewFlag = "REVIEW"
	l.PostFlag = "FALSE"
	l.Traninfo = "TRANSFILE_030524"
	return l
}

func TestSalesUpload_HeaderRowsOnlyForFirstLines(t *testing.T) {
	lines := []*entities.OrderLine{
		classifiedLine("1001I", 1, 6300),
		classifiedLine("1001I", 2, 6300),
		classifiedLine("1002I", 1, 6301),
	}

	sheets := SalesUpload(lines)
	if len(sheets) != 2 {
		t.Fatalf("Expected header and detail sheets, got %d", len(sheets))
	}
	header, detail := sheets[0], sheets[1]

	if header.Name != "Orders" {
		t.Errorf("Expected header sheet Orders, got %s", header.Name)
	}
	if detail.Name != "Order_Details" {
		t.Errorf("Expected detail sheet Order_Details, got %s", detail.Name)
	}
	if len(header.Rows) != 2 {
		t.Errorf("Expected 2 header rows, got %d", len(header.Rows))
	}
	if len(detail.Rows) != 3 {
		t.Errorf("Expected 3 detail rows, got %d", len(detail.Rows))
	}

	first := header.Rows[0]
	if first[0] != "6300" {
		t.Errorf("Expected ORDUNIQ 6300, got %s", first[0])
	}
	if first[4] != "3/5/2024" {
		t.Errorf("Expected ORDDATE 3/5/2024, got %s", first[4])
	}
}

func TestSalesUpload_OrphanDetailAccepted(t *testing.T) {
	// When the first line of an order was dropped earlier, the surviving
	// detail has no header row. That is accepted, not repaired.
	lines := []*entities.OrderLine{classifiedLine("1001I", 2, 6300)}

	sheets := SalesUpload(lines)
	if len(sheets[0].Rows) != 0 {
		t.Errorf("Expected no header rows, got %d", len(sheets[0].Rows))
	}
	if len(sheets[1].Rows) != 1 {
		t.Errorf("Expected 1 detail row, got %d", len(sheets[1].Rows))
	}
}

func TestCreditUpload_DetailLocationIsDamage(t *testing.T) {
	l := classifiedLine("1001I", 1, 6300)
	l.OrderType = entities.OtypeReturn
	l.Whs = "ING"

	sheets := CreditUpload([]*entities.OrderLine{l})
	detail := sheets[1]
	if detail.Name != "Credit_Debit_Detail" {
		t.Errorf("Expected detail sheet Credit_Debit_Detail, got %s", detail.Name)
	}
	// Column 4 is LOCATION: credited stock is always received at damage,
	// whatever warehouse the line was assigned.
	if detail.Rows[0][3] != "DAMAGE" {
		t.Errorf("Expected LOCATION DAMAGE, got %s", detail.Rows[0][3])
	}
}

func TestReviewUpload_Sheets(t *testing.T) {
	l := classifiedLine("1001I", 1, 6300)
	l.Discount = dec("100")
	l.Traninfo = "TRANSFILEREV_030524"

	sheets := ReviewUpload([]*entities.OrderLine{l})
	if sheets[0].Name != "RV_Header" || sheets[1].Name != "RV_Detail" {
		t.Errorf("Expected RV_Header/RV_Detail, got %s/%s", sheets[0].Name, sheets[1].Name)
	}
	if sheets[0].Rows[0][6] != "TRANSFILEREV_030524" {
		t.Errorf("Expected COMMENT TRANSFILEREV_030524, got %s", sheets[0].Rows[0][6])
	}
	if sheets[1].Rows[0][3] != "REVIEW" {
		t.Errorf("Expected REVIEW marker in detail, got %s", sheets[1].Rows[0][3])
	}
}

func TestHeaderDate_UnparseableRendersEmpty(t *testing.T) {
	l := classifiedLine("1001I", 1, 6300)
	l.OrderDate = "garbage"

	sheets := SalesUpload([]*entities.OrderLine{l})
	if got := sheets[0].Rows[0][4]; got != "" {
		t.Errorf("Expected empty ORDDATE for unparseable date, got %q", got)
	}
}

func TestTransferSheets(t *testing.T) {
	recs := []*entities.MovementRecord{
		{
			LineNum: "1", EAN: 9780000000001, FromLocation: "IPS",
			ToLocation: "ING", Qty: 4, PONumber: "IPS_TRANS_030524", RequestedQty: 4,
		},
	}

	flat := TransferFlat(recs)
	if flat.Header[0] != "linenum" || flat.Header[1] != "Ean" {
		t.Errorf("Expected legacy mixed-case flat header, got %v", flat.Header)
	}

	sheet := TransferSheet(recs)
	if sheet.Name != "Transfer" {
		t.Errorf("Expected sheet name Transfer, got %s", sheet.Name)
	}
	if sheet.Header[0] != "LINENUM" {
		t.Errorf("Expected uppercase workbook header, got %v", sheet.Header)
	}

	expected := []string{"1", "9780000000001", "IPS", "ING", "4", "IPS_TRANS_030524", "4"}
	for i, want := range expected {
		if sheet.Rows[0][i] != want {
			t.Errorf("Column %d: expected %s, got %s", i, want, sheet.Rows[0][i])
		}
	}
}
