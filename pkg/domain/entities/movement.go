package entities

// Warehouse labels used throughout the pipeline. Movement warehouse codes
// normalize to one of these, and order lines are assigned one as their
// shipping location.
const (
	WarehousePrimary      = "IPS"
	WarehouseDamage       = "DAMAGE"
	WarehouseDistribution = "ING"
)

// MovementRecord is one row of the inventory-movement extract (CDT file).
// The first 13 fields map one-to-one onto the raw columns; ToLocation,
// RequestedQty and PONumber are filled in by the movement classifier.
// FromLocation is seeded from the raw file's last column (normally blank)
// and overwritten when an action-type rule matches.
type MovementRecord struct {
	TrackingNum     string
	FileDate        string
	Warehouse       string
	ISBN10          string
	UPC             string
	EAN             int64
	ActivityCode    string
	Qty             int64
	EachFlag        string
	DispositionCode string
	LineNum         string
	ActionType      string
	FromLocation    string

	// Derived by the classifier. RequestedQty and PONumber are only
	// meaningful when FromLocation is non-empty.
	ToLocation   string
	RequestedQty int64
	PONumber     string
}

// InTransferStream reports whether this movement feeds the transfer output.
// The transfer extract carries rows moving stock out of an "I" warehouse
// (IPS or ING).
func (m *MovementRecord) InTransferStream() bool {
	return len(m.FromLocation) > 0 && m.FromLocation[0] == 'I'
}
