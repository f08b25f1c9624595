package recon

import (
	"github.com/shopspring/decimal"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// OrdersTable is the relational table the classified order set is persisted
// to. The SQL renderings below run against it.
const OrdersTable = "daily_orders"

const (
	reviewMarker   = "REVIEW"
	postFalse      = "FALSE"
	orderSuffix    = "I"
	traninfoPrefix = "TRANSFILE_"
	reviewPrefix   = "TRANSFILEREV_"

	excludedISBNPrefix = "97814629"
	remapBillTo        = "000808073"
	inHouseSourceWhs   = "HH"
)

var excludedBillTos = map[string]bool{
	"000799074": true,
	"000647955": true,
}

// returnTypeCodes mark a line as a return regardless of pricing.
var returnTypeCodes = map[string]bool{
	"20": true, "50": true, "3501": true, "2008": true, "2020": true,
	"3520": true, "3509": true, "3508": true, "2509": true, "2501": true,
	"2009": true, "2002": true, "2001": true, "2018": true,
}

// damageReturnCodes route a line to the damage warehouse. This is the
// return set minus 3508 and 2018, whose stock goes back into circulation.
var damageReturnCodes = map[string]bool{
	"20": true, "3501": true, "3520": true, "50": true, "2008": true,
	"2020": true, "3509": true, "2509": true, "2501": true, "2009": true,
	"2002": true, "2001": true,
}

var discountReview = decimal.NewFromInt(100)

// RuleKind distinguishes row-dropping rules from in-place updates.
type RuleKind int

const (
	// DropRule removes every matching row from the working set.
	DropRule RuleKind = iota
	// UpdateRule applies a transform to every matching row.
	UpdateRule
)

// OrderRule is one step of the order classification sequence. Each rule
// carries both its direct-execution form (Match/Apply over in-memory rows)
// and the SQL statement the relational replica runs against OrdersTable.
// Both forms are written side by side here precisely so the two call sites
// cannot drift apart; rule order is load-bearing.
type OrderRule struct {
	Name  string
	Kind  RuleKind
	Match func(*entities.OrderLine) bool
	Apply func(*entities.OrderLine)
	SQL   string
}

// OrderRules returns the full ordered rule sequence. crossref maps old
// bill-to accounts to their replacement; pass nil when the crossreference
// table is unavailable and the remap step degrades to a no-op.
func OrderRules(crossref map[string]string) []OrderRule {
	rules := []OrderRule{
		{
			Name:  "drop-zero-qty",
			Kind:  DropRule,
			Match: func(l *entities.OrderLine) bool { return l.Qty == 0 },
			SQL:   "DELETE FROM " + OrdersTable + " WHERE Qty = 0",
		},
		{
			Name:  "drop-missing-isbn",
			Kind:  DropRule,
			Match: func(l *entities.OrderLine) bool { return l.ISBN == "" || l.ISBN == "0" },
			SQL:   "DELETE FROM " + OrdersTable + " WHERE ISBN = '' OR ISBN = '0'",
		},
		{
			Name:  "drop-excluded-billto",
			Kind:  DropRule,
			Match: func(l *entities.OrderLine) bool { return excludedBillTos[l.BillTo] },
			SQL:   "DELETE FROM " + OrdersTable + " WHERE Billto IN ('000799074', '000647955')",
		},
		{
			Name: "drop-excluded-isbn-prefix",
			Kind: DropRule,
			Match: func(l *entities.OrderLine) bool {
				return len(l.ISBN) >= 8 && l.ISBN[:8] == excludedISBNPrefix
			},
			SQL: "DELETE FROM " + OrdersTable + " WHERE SUBSTRING(ISBN, 1, 8) = '97814629'",
		},
		{
			Name:  "billto-from-shipto",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return l.BillTo == remapBillTo },
			Apply: func(l *entities.OrderLine) { l.BillTo = l.ShipTo },
			SQL:   "UPDATE " + OrdersTable + " SET Billto = Shipto WHERE Billto = '000808073'",
		},
		{
			Name: "crossref-remap",
			Kind: UpdateRule,
			Match: func(l *entities.OrderLine) bool {
				_, ok := crossref[l.BillTo]
				return ok
			},
			Apply: func(l *entities.OrderLine) {
				l.CrossrefFlag = "X"
				l.BillTo = crossref[l.BillTo]
			},
			SQL: "UPDATE " + OrdersTable + " d" +
				" JOIN crossref c ON d.Billto = c.Billto" +
				" SET d.Crossref = 'X', d.Billto = c.Ssacct",
		},
		{
			Name: "mark-returns",
			Kind: UpdateRule,
			Match: func(l *entities.OrderLine) bool {
				return returnTypeCodes[l.ReturnType] || l.Price.IsZero() || l.Ext.IsNegative()
			},
			Apply: func(l *entities.OrderLine) { l.OrderType = entities.OtypeReturn },
			SQL: "UPDATE " + OrdersTable + " SET Otype = 'Return'" +
				" WHERE Rettyp IN ('20','50','3501','2008','2020','3520','3509','3508','2509','2501','2009','2002','2001','2018')" +
				" OR Price = 0 OR Ext < 0",
		},
		{
			Name:  "negate-price",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return l.Price.IsNegative() },
			Apply: func(l *entities.OrderLine) { l.Price = l.Price.Neg() },
			SQL:   "UPDATE " + OrdersTable + " SET Price = Price * -1 WHERE Price < 0",
		},
		{
			Name:  "review-discount",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return l.Ext.IsZero() },
			Apply: func(l *entities.OrderLine) { l.Discount = discountReview },
			SQL:   "UPDATE " + OrdersTable + " SET Discount = 100.0 WHERE Ext = 0.00",
		},
		{
			Name:  "whs-default",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return true },
			Apply: func(l *entities.OrderLine) { l.Whs = entities.WarehouseDistribution },
			SQL:   "UPDATE " + OrdersTable + " SET Whs = 'ING'",
		},
		{
			Name:  "whs-in-house",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return l.SourceWhs == inHouseSourceWhs },
			Apply: func(l *entities.OrderLine) { l.Whs = entities.WarehousePrimary },
			SQL:   "UPDATE " + OrdersTable + " SET Whs = 'IPS' WHERE Ingwhs = 'HH'",
		},
		{
			Name:  "whs-damage",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return damageReturnCodes[l.ReturnType] },
			Apply: func(l *entities.OrderLine) { l.Whs = entities.WarehouseDamage },
			SQL: "UPDATE " + OrdersTable + " SET Whs = 'DAMAGE'" +
				" WHERE Rettyp IN ('20','3501','3520','50','2008','2020','3509','2509','2501','2009','2002','2001')",
		},
		{
			Name:  "ordnum-suffix",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return true },
			Apply: func(l *entities.OrderLine) { l.OrderNum += orderSuffix },
			SQL:   "UPDATE " + OrdersTable + " SET Ordnum = CONCAT(Ordnum, 'I')",
		},
		{
			Name: "drop-sra",
			Kind: DropRule,
			Match: func(l *entities.OrderLine) bool {
				return len(l.OrderTypeSRA) > 0 && (l.OrderTypeSRA[0] == 'S' || l.OrderTypeSRA[0] == 'R')
			},
			SQL: "DELETE FROM " + OrdersTable + " WHERE SUBSTRING(Otypesra, 1, 1) IN ('S', 'R')",
		},
		{
			Name:  "derived-fields",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return true },
			Apply: func(l *entities.OrderLine) {
				l.RepInv = l.OrderNum
				l.RepQty = l.Qty
				l.ReviewFlag = reviewMarker
				l.PostFlag = postFalse
			},
			SQL: "UPDATE " + OrdersTable +
				" SET Rep_inv = Ordnum, Repqty = Qty, Review = 'REVIEW', Post = 'FALSE'",
		},
		// The SQL forms read Pdate_token, the MMDDYY value normalized at
		// insert time, so the replica never interprets the raw date column
		// (the feed has shipped several layouts). Rows with an empty token
		// keep their previous Traninfo on both call sites.
		{
			Name:  "traninfo-sale",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return !l.IsReturn() },
			Apply: func(l *entities.OrderLine) { l.Traninfo = traninfoToken(traninfoPrefix, l) },
			SQL: "UPDATE " + OrdersTable +
				" SET Traninfo = CONCAT('TRANSFILE_', Pdate_token)" +
				" WHERE Otype <> 'Return' AND Pdate_token <> ''",
		},
		// A discount-100 row always ends with the review token, even when
		// the previous rule already stamped it as a sale.
		{
			Name:  "traninfo-review",
			Kind:  UpdateRule,
			Match: func(l *entities.OrderLine) bool { return l.Discount.Equal(discountReview) },
			Apply: func(l *entities.OrderLine) { l.Traninfo = traninfoToken(reviewPrefix, l) },
			SQL: "UPDATE " + OrdersTable +
				" SET Traninfo = CONCAT('TRANSFILEREV_', Pdate_token)" +
				" WHERE Discount = 100.0 AND Pdate_token <> ''",
		},
	}

	if crossref == nil {
		// Lookup unavailable: the remap degrades to a no-op instead of
		// aborting the run.
		for i := range rules {
			if rules[i].Name == "crossref-remap" {
				rules[i].Match = func(*entities.OrderLine) bool { return false }
			}
		}
	}

	return rules
}

// ApplyOrderRules executes the rule sequence over the working set and
// returns the surviving rows. Lines are mutated in place; callers must have
// sequenced them first.
func ApplyOrderRules(lines []*entities.OrderLine, rules []OrderRule) []*entities.OrderLine {
	working := lines
	for _, rule := range rules {
		switch rule.Kind {
		case DropRule:
			kept := working[:0:0]
			for _, l := range working {
				if !rule.Match(l) {
					kept = append(kept, l)
				}
			}
			working = kept
		case UpdateRule:
			for _, l := range working {
				if rule.Match(l) {
					rule.Apply(l)
				}
			}
		}
	}
	return working
}

// traninfoToken builds the ledger comment token from a prefix and the
// line's order date in MMDDYY form. Lines whose order date cannot be
// interpreted keep their previous token.
func traninfoToken(prefix string, l *entities.OrderLine) string {
	token := l.OrderDateToken()
	if token == "" {
		return l.Traninfo
	}
	return prefix + token
}
