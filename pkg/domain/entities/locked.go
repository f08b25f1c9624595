package entities

// Locked/in-process invoice codes and the distributor account they are
// filed under. The two (code, account) pairs select disjoint row sets.
const (
	InvoiceCodeLocked    = "QH"
	InvoiceCodeInProcess = "OP"
	DistributorSAN       = "631760X"
)

// LockedRecord is one row of the locked/in-process extract (CDP file),
// 13 comma-delimited columns. The trailing filler columns carry no business
// meaning but are preserved for the in-process projection, which exports
// the record verbatim.
type LockedRecord struct {
	Tag         string
	FileDate    string
	AccountSAN  string
	ISBN10      string
	Filler5     string
	ISBN13      string
	InvoiceCode string
	Qty         int64
	Filler9     string
	Filler10    string
	Filler11    string
	Filler12    string
	Filler13    string
}

// IsLocked reports whether the record belongs to the locked projection.
func (r *LockedRecord) IsLocked() bool {
	return r.InvoiceCode == InvoiceCodeLocked && r.AccountSAN == DistributorSAN
}

// IsInProcess reports whether the record belongs to the in-process projection.
func (r *LockedRecord) IsInProcess() bool {
	return r.InvoiceCode == InvoiceCodeInProcess && r.AccountSAN == DistributorSAN
}
