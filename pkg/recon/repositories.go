package recon

import "context"

// CrossrefRepository exposes the account-crossreference table: old bill-to
// account mapped to its replacement. Read-only to the engine.
type CrossrefRepository interface {
	AccountMap(ctx context.Context) (map[string]string, error)
}

// OnHandRepository exposes the distribution warehouse's on-hand quantity
// per ISBN. Read-only to the engine.
type OnHandRepository interface {
	OnHandByISBN(ctx context.Context) (map[string]int64, error)
}
