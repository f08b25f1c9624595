package recon

import (
	"strings"
	"time"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

const (
	// primaryWarehousePrefix marks warehouse codes belonging to the
	// primary fulfillment site.
	primaryWarehousePrefix = "631760"
	// damageWarehouseCode is the one exact code for the damage location.
	damageWarehouseCode = "6318681"

	// transferPOPrefix is prepended to the run date (MMDDYY) to build the
	// PO token shared by every transfer row of one run.
	transferPOPrefix = "IPS_TRANS_"
)

// excludedActionTypes are movement rows dropped outright before any
// location derivation.
var excludedActionTypes = map[string]bool{
	"SS": true,
	"IM": true,
	"RT": true,
}

// locationRule assigns FromLocation/ToLocation for a set of action types.
// The groups are mutually exclusive by construction: no action type appears
// in more than one rule. Rows matching no rule keep whatever from-location
// the raw extract carried.
type locationRule struct {
	actionTypes map[string]bool
	assign      func(r *entities.MovementRecord)
}

var locationRules = []locationRule{
	{
		actionTypes: map[string]bool{"??": true, "HS": true, "HD": true},
		assign: func(r *entities.MovementRecord) {
			r.FromLocation = entities.WarehouseDamage
			r.ToLocation = r.Warehouse
		},
	},
	{
		actionTypes: map[string]bool{"DT": true},
		assign: func(r *entities.MovementRecord) {
			r.FromLocation = r.Warehouse
			r.ToLocation = entities.WarehouseDamage
		},
	},
	{
		actionTypes: map[string]bool{"TC": true, "TD": true, "TE": true, "TN": true, "TH": true},
		assign: func(r *entities.MovementRecord) {
			r.FromLocation = r.Warehouse
			r.ToLocation = entities.WarehouseDistribution
		},
	},
}

// NormalizeWarehouse maps a raw movement warehouse code onto one of the
// three warehouse labels. The damage code is an exact match and takes
// precedence over the prefix rule by construction (it does not share the
// primary prefix).
func NormalizeWarehouse(code string) string {
	switch {
	case strings.HasPrefix(code, primaryWarehousePrefix):
		return entities.WarehousePrimary
	case code == damageWarehouseCode:
		return entities.WarehouseDamage
	default:
		return entities.WarehouseDistribution
	}
}

// TransferPONumber builds the PO token for a run date. Every qualifying row
// of one run carries the same token, so outputs depend only on the run
// date, not wall-clock time.
func TransferPONumber(runDate time.Time) string {
	return transferPOPrefix + runDate.Format("010206")
}

// ClassifyMovements applies the inventory-movement rules in order:
// warehouse normalization, action-type exclusion, location derivation,
// quantity sign correction, requested-quantity propagation and PO token
// generation. It returns the surviving rows, enriched in place.
func ClassifyMovements(recs []*entities.MovementRecord, runDate time.Time) []*entities.MovementRecord {
	poNumber := TransferPONumber(runDate)

	out := make([]*entities.MovementRecord, 0, len(recs))
	for _, r := range recs {
		r.Warehouse = NormalizeWarehouse(r.Warehouse)

		if excludedActionTypes[r.ActionType] {
			continue
		}

		for _, rule := range locationRules {
			if rule.actionTypes[r.ActionType] {
				rule.assign(r)
				break
			}
		}

		if r.FromLocation != "" {
			if r.Qty < 0 {
				r.Qty = -r.Qty
			}
			r.RequestedQty = r.Qty
			r.PONumber = poNumber
		}

		out = append(out, r)
	}
	return out
}

// TransferRows filters classified movements down to the transfer stream.
func TransferRows(recs []*entities.MovementRecord) []*entities.MovementRecord {
	var out []*entities.MovementRecord
	for _, r := range recs {
		if r.InTransferStream() {
			out = append(out, r)
		}
	}
	return out
}
