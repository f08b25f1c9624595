package recon

import (
	"fmt"
	"strconv"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// Sheet is one rendered output table: a sheet in a workbook, or a flat file
// when rendered without styling. Every cell is already a string; the
// formatter layer never reinterprets values.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Partition is one carve-out of the classified order set, with the SQL
// predicates the relational replica uses to select the same rows from
// OrdersTable. Header rows are the Line_num = 1 subset of the detail rows;
// an order whose first line was dropped earlier yields a detail with no
// header, which is accepted. HeaderWhere narrows DetailWhere to those first
// lines; the uploads path counts against it to verify the replica agrees
// with the client-side header derivation.
type Partition struct {
	Name        string
	Match       func(*entities.OrderLine) bool
	HeaderWhere string
	DetailWhere string
}

// The three partitions, in carve-out order. Each removes its rows from the
// remainder before the next one runs, and the SQL predicates encode the
// same precedence explicitly.
var (
	ReviewPartition = Partition{
		Name:        "review",
		Match:       func(l *entities.OrderLine) bool { return l.Discount.Equal(discountReview) },
		HeaderWhere: "Discount = 100.0 AND Line_num = 1",
		DetailWhere: "Discount = 100.0",
	}
	CreditPartition = Partition{
		Name:        "credit",
		Match:       func(l *entities.OrderLine) bool { return l.IsReturn() },
		HeaderWhere: "Otype = 'Return' AND Discount <> 100.0 AND Line_num = 1",
		DetailWhere: "Otype = 'Return' AND Discount <> 100.0",
	}
	SalesPartition = Partition{
		Name:        "sales",
		Match:       func(l *entities.OrderLine) bool { return true },
		HeaderWhere: "Otype <> 'Return' AND Discount <> 100.0 AND Line_num = 1",
		DetailWhere: "Otype <> 'Return' AND Discount <> 100.0",
	}
)

// SplitPartitions carves the classified set into review, credit and sales
// in that order. The three sets are disjoint and their union is the input.
func SplitPartitions(lines []*entities.OrderLine) (review, credit, sales []*entities.OrderLine) {
	remainder := lines
	for _, p := range []struct {
		part Partition
		out  *[]*entities.OrderLine
	}{
		{ReviewPartition, &review},
		{CreditPartition, &credit},
		{SalesPartition, &sales},
	} {
		var next []*entities.OrderLine
		for _, l := range remainder {
			if p.part.Match(l) {
				*p.out = append(*p.out, l)
			} else {
				next = append(next, l)
			}
		}
		remainder = next
	}
	return review, credit, sales
}

// Workbook sheet names. The downstream import tool locates data by the
// defined name matching the sheet.
const (
	SheetReviewHeader = "RV_Header"
	SheetReviewDetail = "RV_Detail"
	SheetCreditHeader = "Credit_Debit_Notes"
	SheetCreditDetail = "Credit_Debit_Detail"
	SheetSalesHeader  = "Orders"
	SheetSalesDetail  = "Order_Details"
	SheetTransfer     = "Transfer"
)

// ReviewUpload renders the review partition as a header+detail sheet pair.
func ReviewUpload(lines []*entities.OrderLine) []Sheet {
	header := Sheet{
		Name:   SheetReviewHeader,
		Header: []string{"ORDUNIQ", "ORDNUMBER", "CUSTOMER", "PONUMBER", "ORDDATE", "DESC", "COMMENT", "POSTINV"},
	}
	detail := Sheet{
		Name:   SheetReviewDetail,
		Header: []string{"ORDUNIQ", "LINENUM", "ITEM", "REVIEW", "LOCATION", "QTYORDERED", "PRIUNTPRC", "DISCPER", "QTYSHIPPED"},
	}
	for _, l := range lines {
		if l.LineNum == 1 {
			header.Rows = append(header.Rows, []string{
				formatID(l.OrderID), l.OrderNum, l.BillTo, l.PONumber,
				headerDate(l), l.RepInv, l.Traninfo, l.PostFlag,
			})
		}
		detail.Rows = append(detail.Rows, []string{
			formatID(l.OrderID), strconv.Itoa(l.LineNum), l.ISBN, l.ReviewFlag, l.Whs,
			formatQty(l.Qty), l.Price.String(), l.Discount.String(), formatQty(l.RepQty),
		})
	}
	return []Sheet{header, detail}
}

// CreditUpload renders the credit partition. Detail rows carry the damage
// warehouse as a constant location: credited stock is always received
// there.
func CreditUpload(lines []*entities.OrderLine) []Sheet {
	header := Sheet{
		Name:   SheetCreditHeader,
		Header: []string{"CRDUNIQ", "ORDNUMBER", "CUSTOMER", "PONUMBER", "ORDDATE"},
	}
	detail := Sheet{
		Name:   SheetCreditDetail,
		Header: []string{"CRDUNIQ", "LINENUM", "ITEM", "LOCATION", "QTYRETURN", "PRIUNTPRC", "DISCPER"},
	}
	for _, l := range lines {
		if l.LineNum == 1 {
			header.Rows = append(header.Rows, []string{
				formatID(l.OrderID), l.OrderNum, l.BillTo, l.PONumber, headerDate(l),
			})
		}
		detail.Rows = append(detail.Rows, []string{
			formatID(l.OrderID), strconv.Itoa(l.LineNum), l.ISBN, entities.WarehouseDamage,
			formatQty(l.Qty), l.Price.String(), l.Discount.String(),
		})
	}
	return []Sheet{header, detail}
}

// SalesUpload renders the sales partition.
func SalesUpload(lines []*entities.OrderLine) []Sheet {
	header := Sheet{
		Name:   SheetSalesHeader,
		Header: []string{"ORDUNIQ", "ORDNUMBER", "CUSTOMER", "PONUMBER", "ORDDATE", "DESC", "COMMENT", "POSTINV"},
	}
	detail := Sheet{
		Name:   SheetSalesDetail,
		Header: []string{"ORDUNIQ", "LINENUM", "ITEM", "LOCATION", "QTYORDERED", "PRIUNTPRC", "DISCPER", "QTYSHIPPED"},
	}
	for _, l := range lines {
		if l.LineNum == 1 {
			header.Rows = append(header.Rows, []string{
				formatID(l.OrderID), l.OrderNum, l.BillTo, l.PONumber,
				headerDate(l), l.RepInv, l.Traninfo, l.PostFlag,
			})
		}
		detail.Rows = append(detail.Rows, []string{
			formatID(l.OrderID), strconv.Itoa(l.LineNum), l.ISBN, l.Whs,
			formatQty(l.Qty), l.Price.String(), l.Discount.String(), formatQty(l.RepQty),
		})
	}
	return []Sheet{header, detail}
}

// TransferSheet renders the transfer stream for the workbook upload.
func TransferSheet(recs []*entities.MovementRecord) Sheet {
	s := Sheet{
		Name:   SheetTransfer,
		Header: []string{"LINENUM", "EAN", "FROMLOC", "TOLOC", "QTY", "PONUM", "QTYREQ"},
	}
	for _, r := range recs {
		s.Rows = append(s.Rows, transferRow(r))
	}
	return s
}

// TransferFlat renders the transfer stream for the flat CSV, which uses the
// legacy mixed-case header the warehouse tooling expects.
func TransferFlat(recs []*entities.MovementRecord) Sheet {
	s := Sheet{
		Name:   SheetTransfer,
		Header: []string{"linenum", "Ean", "Fromloc", "Toloc", "Qty", "Ponum", "Qtyreq"},
	}
	for _, r := range recs {
		s.Rows = append(s.Rows, transferRow(r))
	}
	return s
}

func transferRow(r *entities.MovementRecord) []string {
	return []string{
		r.LineNum, strconv.FormatInt(r.EAN, 10), r.FromLocation, r.ToLocation,
		formatQty(r.Qty), r.PONumber, formatQty(r.RequestedQty),
	}
}

// headerDate renders the order date as M/D/YYYY without zero padding, the
// form the ledger import expects on header rows. Unparseable dates render
// empty.
func headerDate(l *entities.OrderLine) string {
	t, ok := l.ParsedOrderDate()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func formatQty(q int64) string { return strconv.FormatInt(q, 10) }
