package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// DailyStore persists the daily order set and re-queries it with the SQL
// renderings of the classification rules. This is the production path's
// second call site: the relational replica must select exactly the rows the
// in-memory engine produced.
type DailyStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewDailyStore creates a store over an open database.
func NewDailyStore(db *sql.DB, log *slog.Logger) *DailyStore {
	return &DailyStore{db: db, log: log}
}

// EnsureSchema creates the daily order table if it does not exist.
func (s *DailyStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+recon.OrdersTable+` (
		Ordnum      VARCHAR(32)  NOT NULL,
		Otype       VARCHAR(16)  NOT NULL,
		Otypesra    VARCHAR(16)  NOT NULL,
		Ponumber    VARCHAR(64)  NOT NULL,
		Billto      VARCHAR(16)  NOT NULL,
		Billtoname  VARCHAR(128) NOT NULL,
		Bcntry      VARCHAR(8)   NOT NULL,
		Shipto      VARCHAR(16)  NOT NULL,
		Shipname    VARCHAR(128) NOT NULL,
		ISBN        VARCHAR(16)  NOT NULL,
		Title       VARCHAR(256) NOT NULL,
		Client      VARCHAR(32)  NOT NULL,
		Qty         BIGINT       NOT NULL,
		Ext         DECIMAL(14,4) NOT NULL,
		Price       DECIMAL(14,4) NOT NULL,
		Discount    DECIMAL(14,4) NOT NULL,
		Currenttyp  VARCHAR(8)   NOT NULL,
		Rettyp      VARCHAR(8)   NOT NULL,
		Linekey     VARCHAR(32)  NOT NULL,
		Ingwhs      VARCHAR(8)   NOT NULL,
		St_name     VARCHAR(64)  NOT NULL,
		Pdate       VARCHAR(16)  NOT NULL,
		Pdate_token VARCHAR(8)   NOT NULL DEFAULT '',
		Line_num    INT          NOT NULL,
		Order_id    BIGINT       NOT NULL,
		Crossref    VARCHAR(1)   NOT NULL DEFAULT '',
		Whs         VARCHAR(8)   NOT NULL DEFAULT '',
		Rep_inv     VARCHAR(32)  NOT NULL DEFAULT '',
		Repqty      BIGINT       NOT NULL DEFAULT 0,
		Review      VARCHAR(8)   NOT NULL DEFAULT '',
		Post        VARCHAR(8)   NOT NULL DEFAULT '',
		Traninfo    VARCHAR(32)  NOT NULL DEFAULT '',
		KEY idx_order (Order_id, Line_num)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", recon.OrdersTable, err)
	}
	return nil
}

// LoadSequenced replaces the table contents with the sequenced, not yet
// classified order lines: the same starting point the in-memory engine
// works from. The order date is persisted both raw and as the normalized
// MMDDYY token, so rule SQL reads the token instead of interpreting the
// raw column.
func (s *DailyStore) LoadSequenced(ctx context.Context, lines []*entities.OrderLine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+recon.OrdersTable); err != nil {
		return fmt.Errorf("failed to clear %s: %w", recon.OrdersTable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+recon.OrdersTable+` (
		Ordnum, Otype, Otypesra, Ponumber, Billto, Billtoname, Bcntry,
		Shipto, Shipname, ISBN, Title, Client, Qty, Ext, Price, Discount,
		Currenttyp, Rettyp, Linekey, Ingwhs, St_name, Pdate, Pdate_token,
		Line_num, Order_id
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range lines {
		_, err := stmt.ExecContext(ctx,
			l.OrderNum, l.OrderType, l.OrderTypeSRA, l.PONumber, l.BillTo,
			l.BillToName, l.BillToCountry, l.ShipTo, l.ShipToName, l.ISBN,
			l.Title, l.Client, l.Qty, l.Ext.String(), l.Price.String(),
			l.Discount.String(), l.CurrencyType, l.ReturnType, l.LineKey,
			l.SourceWhs, l.StateName, l.OrderDate, l.OrderDateToken(),
			l.LineNum, l.OrderID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order %s line %d: %w", l.OrderNum, l.LineNum, err)
		}
	}

	return tx.Commit()
}

// ApplyRules executes each rule's SQL rendering in sequence. The crossref
// remap degrades gracefully when its lookup table is missing; any other
// failure aborts.
func (s *DailyStore) ApplyRules(ctx context.Context, rules []recon.OrderRule) error {
	for _, rule := range rules {
		if _, err := s.db.ExecContext(ctx, rule.SQL); err != nil {
			if rule.Name == "crossref-remap" {
				s.log.Warn("crossref remap skipped in store", "error", err)
				continue
			}
			return fmt.Errorf("rule %s: %w", rule.Name, err)
		}
	}
	return nil
}

// CountHeaders returns the number of header rows the replica selects for a
// partition, using the partition's header predicate. Callers compare it
// against the client-side header derivation to catch replica drift.
func (s *DailyStore) CountHeaders(ctx context.Context, p recon.Partition) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+recon.OrdersTable+" WHERE "+p.HeaderWhere).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s headers: %w", p.Name, err)
	}
	return n, nil
}

// SelectPartition reads one partition's lines back, ordered by Order_id
// then Line_num, using the partition's declarative predicate. The rows are
// complete order lines so the same projection code renders uploads from
// either call site.
func (s *DailyStore) SelectPartition(ctx context.Context, p recon.Partition) ([]*entities.OrderLine, error) {
	query := `SELECT Ordnum, Otype, Otypesra, Ponumber, Billto, Billtoname, Bcntry,
		Shipto, Shipname, ISBN, Title, Client, Qty, Ext, Price, Discount,
		Currenttyp, Rettyp, Linekey, Ingwhs, St_name, Pdate, Line_num, Order_id,
		Crossref, Whs, Rep_inv, Repqty, Review, Post, Traninfo
		FROM ` + recon.OrdersTable + ` WHERE ` + p.DetailWhere + ` ORDER BY Order_id, Line_num`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s partition: %w", p.Name, err)
	}
	defer rows.Close()

	var lines []*entities.OrderLine
	for rows.Next() {
		var l entities.OrderLine
		var ext, price, discount string
		err := rows.Scan(
			&l.OrderNum, &l.OrderType, &l.OrderTypeSRA, &l.PONumber, &l.BillTo,
			&l.BillToName, &l.BillToCountry, &l.ShipTo, &l.ShipToName, &l.ISBN,
			&l.Title, &l.Client, &l.Qty, &ext, &price, &discount,
			&l.CurrencyType, &l.ReturnType, &l.LineKey, &l.SourceWhs,
			&l.StateName, &l.OrderDate, &l.LineNum, &l.OrderID,
			&l.CrossrefFlag, &l.Whs, &l.RepInv, &l.RepQty, &l.ReviewFlag,
			&l.PostFlag, &l.Traninfo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s partition row: %w", p.Name, err)
		}
		if l.Ext, err = decimal.NewFromString(ext); err != nil {
			return nil, fmt.Errorf("failed to parse Ext %q: %w", ext, err)
		}
		if l.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse Price %q: %w", price, err)
		}
		if l.Discount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("failed to parse Discount %q: %w", discount, err)
		}
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s partition: %w", p.Name, err)
	}
	return lines, nil
}
