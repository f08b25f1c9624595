package recon

import (
	"context"
	"sort"
	"strconv"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// Deficit is a replenishment shortfall at the distribution warehouse:
// on-hand minus the day's demand, emitted only when negative.
type Deficit struct {
	ISBN string
	Qty  int64
}

// ReplenishmentDeficits aggregates the sales set's distribution-warehouse
// demand by ISBN and joins it against the external on-hand table. Only
// ISBNs present in both sets are considered. The error, when non-nil, is a
// LookupUnavailableError: the caller skips this output and continues.
func ReplenishmentDeficits(ctx context.Context, sales []*entities.OrderLine, onHand OnHandRepository) ([]Deficit, error) {
	demand := make(map[string]int64)
	for _, l := range sales {
		if !l.IsReturn() && l.Whs == entities.WarehouseDistribution {
			demand[l.ISBN] += l.Qty
		}
	}

	stock, err := onHand.OnHandByISBN(ctx)
	if err != nil {
		return nil, err
	}

	var deficits []Deficit
	for isbn, sold := range demand {
		oh, ok := stock[isbn]
		if !ok {
			continue
		}
		if total := oh - sold; total < 0 {
			deficits = append(deficits, Deficit{ISBN: isbn, Qty: total})
		}
	}
	// Map iteration order is random; sort so reruns are byte-identical.
	sort.Slice(deficits, func(i, j int) bool { return deficits[i].ISBN < deficits[j].ISBN })
	return deficits, nil
}

// DeficitSheet renders replenishment deficits for the flat CSV.
func DeficitSheet(deficits []Deficit) Sheet {
	s := Sheet{
		Name:   "replenishment",
		Header: []string{"ISBN", "TOTAL_QTY_ING"},
	}
	for _, d := range deficits {
		s.Rows = append(s.Rows, []string{d.ISBN, strconv.FormatInt(d.Qty, 10)})
	}
	return s
}
