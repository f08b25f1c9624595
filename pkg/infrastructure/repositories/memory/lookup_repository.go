// Package memory provides in-memory lookup repositories, used by tests and
// by runs configured without a database.
package memory

import (
	"context"

	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// CrossrefRepository is an in-memory account crossreference.
type CrossrefRepository struct {
	accounts map[string]string
}

// NewCrossrefRepository creates an empty crossreference repository.
func NewCrossrefRepository() *CrossrefRepository {
	return &CrossrefRepository{accounts: make(map[string]string)}
}

// Verify interface compliance
var _ recon.CrossrefRepository = (*CrossrefRepository)(nil)

// Add registers a remapping from an old bill-to account to its replacement.
func (r *CrossrefRepository) Add(oldAccount, newAccount string) {
	r.accounts[oldAccount] = newAccount
}

// AccountMap returns a copy of the crossreference map.
func (r *CrossrefRepository) AccountMap(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(r.accounts))
	for k, v := range r.accounts {
		out[k] = v
	}
	return out, nil
}

// OnHandRepository is an in-memory on-hand quantity table.
type OnHandRepository struct {
	onHand map[string]int64
}

// NewOnHandRepository creates an empty on-hand repository.
func NewOnHandRepository() *OnHandRepository {
	return &OnHandRepository{onHand: make(map[string]int64)}
}

// Verify interface compliance
var _ recon.OnHandRepository = (*OnHandRepository)(nil)

// Set records the on-hand quantity for an ISBN.
func (r *OnHandRepository) Set(isbn string, qty int64) {
	r.onHand[isbn] = qty
}

// OnHandByISBN returns a copy of the on-hand map.
func (r *OnHandRepository) OnHandByISBN(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(r.onHand))
	for k, v := range r.onHand {
		out[k] = v
	}
	return out, nil
}
