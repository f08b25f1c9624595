// Package sqldb backs the external lookup tables and the persisted
// classified-order table with a relational database.
package sqldb

import (
	"context"
	"database/sql"

	"github.com/patrickmn/go-cache"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// LookupRepository reads the account-crossreference and on-hand tables.
// Results are cached for the lifetime of a run so the classifier and the
// replenishment derivation hit the database once each.
type LookupRepository struct {
	db    *sql.DB
	cache *cache.Cache
}

// NewLookupRepository creates a lookup repository over an open database.
func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{
		db:    db,
		cache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Verify interface compliance
var (
	_ recon.CrossrefRepository = (*LookupRepository)(nil)
	_ recon.OnHandRepository   = (*LookupRepository)(nil)
)

const (
	crossrefCacheKey = "crossref"
	onHandCacheKey   = "ingqty"
)

// AccountMap returns the crossreference table as old account to new
// account. Failures are reported as LookupUnavailableError so callers
// degrade instead of aborting.
func (r *LookupRepository) AccountMap(ctx context.Context) (map[string]string, error) {
	if cached, ok := r.cache.Get(crossrefCacheKey); ok {
		return cached.(map[string]string), nil
	}

	rows, err := r.db.QueryContext(ctx, "SELECT Billto, Ssacct FROM crossref")
	if err != nil {
		return nil, &entities.LookupUnavailableError{Source: "crossref", Err: err}
	}
	defer rows.Close()

	accounts := make(map[string]string)
	for rows.Next() {
		var oldAcct, newAcct string
		if err := rows.Scan(&oldAcct, &newAcct); err != nil {
			return nil, &entities.LookupUnavailableError{Source: "crossref", Err: err}
		}
		accounts[oldAcct] = newAcct
	}
	if err := rows.Err(); err != nil {
		return nil, &entities.LookupUnavailableError{Source: "crossref", Err: err}
	}

	r.cache.Set(crossrefCacheKey, accounts, cache.DefaultExpiration)
	return accounts, nil
}

// OnHandByISBN returns the distribution warehouse's on-hand quantities.
func (r *LookupRepository) OnHandByISBN(ctx context.Context) (map[string]int64, error) {
	if cached, ok := r.cache.Get(onHandCacheKey); ok {
		return cached.(map[string]int64), nil
	}

	rows, err := r.db.QueryContext(ctx, "SELECT ISBN, CAST(INGOH AS SIGNED) FROM ingqty")
	if err != nil {
		return nil, &entities.LookupUnavailableError{Source: "ingqty", Err: err}
	}
	defer rows.Close()

	onHand := make(map[string]int64)
	for rows.Next() {
		var isbn string
		var qty int64
		if err := rows.Scan(&isbn, &qty); err != nil {
			return nil, &entities.LookupUnavailableError{Source: "ingqty", Err: err}
		}
		onHand[isbn] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, &entities.LookupUnavailableError{Source: "ingqty", Err: err}
	}

	r.cache.Set(onHandCacheKey, onHand, cache.DefaultExpiration)
	return onHand, nil
}
