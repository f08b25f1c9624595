package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Otype values assigned by the order classifier. Every line that is not
// reclassified as a return keeps the order-type code from the raw file.
const OtypeReturn = "Return"

// OrderLine is one row of the tab-delimited daily transaction file.
// The first 22 fields map one-to-one onto the raw columns. The remaining
// fields are stamped by the sequencer and the order classifier.
type OrderLine struct {
	OrderNum      string
	OrderType     string
	OrderTypeSRA  string
	PONumber      string
	BillTo        string
	BillToName    string
	BillToCountry string
	ShipTo        string
	ShipToName    string
	ISBN          string
	Title         string
	Client        string
	Qty           int64
	Ext           decimal.Decimal
	Price         decimal.Decimal
	Discount      decimal.Decimal
	CurrencyType  string
	ReturnType    string
	LineKey       string
	SourceWhs     string
	StateName     string
	OrderDate     string

	// Stamped by the sequencer before any filtering. LineNum counts
	// occurrences of OrderNum in file order starting at 1; OrderID is
	// shared by every line of one order number.
	LineNum int
	OrderID int64

	// Derived by the order classifier.
	CrossrefFlag string
	Whs          string
	RepInv       string
	RepQty       int64
	ReviewFlag   string
	PostFlag     string
	Traninfo     string
}

// orderDateLayouts are tried in sequence when interpreting the raw order
// date column. The feed has shipped both ISO and US-style dates.
var orderDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01/02/06",
}

// ParsedOrderDate interprets the raw OrderDate column. The second return
// value is false when the column does not match any known layout.
func (l *OrderLine) ParsedOrderDate() (time.Time, bool) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, l.OrderDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrderDateToken renders the order date as MMDDYY, the form embedded in
// ledger comment tokens. Empty when the date matches no known layout. The
// store persists this normalized value so SQL never has to interpret the
// raw date column.
func (l *OrderLine) OrderDateToken() string {
	t, ok := l.ParsedOrderDate()
	if !ok {
		return ""
	}
	return t.Format("010206")
}

// IsReturn reports whether the classifier marked this line as a return.
func (l *OrderLine) IsReturn() bool {
	return l.OrderType == OtypeReturn
}
